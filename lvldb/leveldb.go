// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/sarcophagus-org/sarco-ledger/kv"
)

var _ kv.StoreCloser = (*LevelDB)(nil)

// Options tunes the caches of a persistent db. Values below 16 are raised to 16.
type Options struct {
	CacheSize              int
	OpenFilesCacheCapacity int
}

var (
	writeOpt = opt.WriteOptions{}
	readOpt  = opt.ReadOptions{}
)

// auto flushed bulks are written once they hold this many bytes
const autoFlushSize = 128 * 1024

// LevelDB is a kv.Store backed by goleveldb.
type LevelDB struct {
	db *leveldb.DB
}

// New opens the db at path, creating it when missing.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open db storage")
	}
	return open(stg, opts)
}

// NewMem creates a db that lives in memory only.
func NewMem() (*LevelDB, error) {
	return open(storage.NewMemStorage(), Options{})
}

func open(stg storage.Storage, opts Options) (*LevelDB, error) {
	cacheMiB := max(opts.CacheSize, 16)
	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheMiB / 2 * opt.MiB,
		// two write buffers are held at once
		WriteBuffer: cacheMiB / 4 * opt.MiB,
		Filter:      filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &LevelDB{db: db}, nil
}

// IsNotFound reports whether err is the missing key error of Get.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get returns the value stored under key.
func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, &readOpt)
}

func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, &writeOpt)
}

func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

// Close releases the db. Any later call fails.
func (ldb *LevelDB) Close() error {
	return ldb.db.Close()
}

// Snapshot creates a consistent read view of the db. A failure to take the
// snapshot surfaces on the first read.
func (ldb *LevelDB) Snapshot() kv.Snapshot {
	snap, err := ldb.db.GetSnapshot()
	return &snapshot{snap, err}
}

// Bulk creates a bulk writer. Nothing is written until Write is called,
// unless auto flush is enabled.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &bulk{db: ldb.db}
}

// Iterate creates an iterator over the given key range.
func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, &readOpt)
}

type snapshot struct {
	snap *leveldb.Snapshot
	err  error
}

func (s *snapshot) Get(key []byte) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snap.Get(key, &readOpt)
}

func (s *snapshot) Has(key []byte) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.snap.Has(key, &readOpt)
}

func (s *snapshot) IsNotFound(err error) bool { return errors.Is(err, leveldb.ErrNotFound) }

func (s *snapshot) Release() {
	if s.snap != nil {
		s.snap.Release()
	}
}

type bulk struct {
	db        *leveldb.DB
	batch     leveldb.Batch
	autoFlush bool
}

func (b *bulk) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return b.maybeFlush()
}

func (b *bulk) Delete(key []byte) error {
	b.batch.Delete(key)
	return b.maybeFlush()
}

func (b *bulk) EnableAutoFlush() { b.autoFlush = true }

func (b *bulk) Write() error { return b.flush() }

func (b *bulk) maybeFlush() error {
	if b.autoFlush && len(b.batch.Dump()) >= autoFlushSize {
		return b.flush()
	}
	return nil
}

func (b *bulk) flush() error {
	if b.batch.Len() == 0 {
		return nil
	}
	if err := b.db.Write(&b.batch, &writeOpt); err != nil {
		return err
	}
	b.batch.Reset()
	return nil
}
