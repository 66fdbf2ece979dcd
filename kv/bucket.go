// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix, so that many logical stores can share one kv store.
type Bucket string

func (b Bucket) key(k []byte) []byte {
	return append(append(make([]byte, 0, len(b)+len(k)), b...), k...)
}

// NewGetter wraps src so that every key is read under the bucket.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter wraps src so that every key is written under the bucket.
func (b Bucket) NewPutter(src Putter) Putter {
	return &bucketPutter{b, src}
}

// NewStore wraps src so that all of its operations stay within the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketGetter{b, src}, bucketPutter{b, src}, src}
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) { return g.src.Get(g.b.key(key)) }
func (g *bucketGetter) Has(key []byte) (bool, error)   { return g.src.Has(g.b.key(key)) }
func (g *bucketGetter) IsNotFound(err error) bool      { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	src Putter
}

func (p *bucketPutter) Put(key, val []byte) error { return p.src.Put(p.b.key(key), val) }
func (p *bucketPutter) Delete(key []byte) error   { return p.src.Delete(p.b.key(key)) }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) Snapshot() Snapshot {
	snap := s.src.Snapshot()
	return &bucketSnapshot{bucketGetter{s.bucketGetter.b, snap}, snap}
}

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &bucketBulk{bucketPutter{s.bucketPutter.b, bulk}, bulk}
}

func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketGetter.b
	r.Start = b.key(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(b)).Limit
	} else {
		r.Limit = b.key(r.Limit)
	}
	return &bucketIterator{s.src.Iterate(r), len(b)}
}

type bucketSnapshot struct {
	bucketGetter
	snap Snapshot
}

func (s *bucketSnapshot) Release() { s.snap.Release() }

type bucketBulk struct {
	bucketPutter
	bulk Bulk
}

func (b *bucketBulk) EnableAutoFlush() { b.bulk.EnableAutoFlush() }
func (b *bucketBulk) Write() error     { return b.bulk.Write() }

// bucketIterator strips the bucket from keys.
type bucketIterator struct {
	Iterator
	prefixLen int
}

func (it *bucketIterator) Key() []byte { return it.Iterator.Key()[it.prefixLen:] }
