// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type mem map[string]string

func (m mem) Get(k []byte) ([]byte, error) {
	if v, ok := m[string(k)]; ok {
		return []byte(v), nil
	}
	return nil, errNotFound
}

func (m mem) Has(k []byte) (bool, error) {
	_, ok := m[string(k)]
	return ok, nil
}

func (m mem) Put(k, v []byte) error {
	m[string(k)] = string(v)
	return nil
}

func (m mem) Delete(k []byte) error {
	delete(m, string(k))
	return nil
}

func (m mem) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

func TestBucket_GetterGet(t *testing.T) {
	m := mem{"k1": "v1", "k2": "v2"}

	tests := []struct {
		b    Bucket
		key  string
		want string
	}{
		{Bucket(""), "k1", "v1"},
		{Bucket(""), "k2", "v2"},
		{Bucket("k"), "k1", ""},
		{Bucket("k"), "1", "v1"},
		{Bucket("k"), "2", "v2"},
		{Bucket("k1"), "", "v1"},
	}
	for _, tt := range tests {
		got, _ := tt.b.NewGetter(m).Get([]byte(tt.key))
		assert.Equal(t, tt.want, string(got), "bucket %q key %q", tt.b, tt.key)
	}
}

func TestBucket_GetterHas(t *testing.T) {
	m := mem{"k1": "v1", "k2": "v2"}

	tests := []struct {
		b    Bucket
		key  string
		want bool
	}{
		{Bucket(""), "k1", true},
		{Bucket("k"), "k1", false},
		{Bucket("k"), "1", true},
		{Bucket("k1"), "", true},
	}
	for _, tt := range tests {
		got, _ := tt.b.NewGetter(m).Has([]byte(tt.key))
		assert.Equal(t, tt.want, got, "bucket %q key %q", tt.b, tt.key)
	}
}

func TestBucket_Putter(t *testing.T) {
	m := mem{}
	p := Bucket("head.").NewPutter(m)

	assert.NoError(t, p.Put([]byte("num"), []byte{1}))
	assert.Equal(t, mem{"head.num": "\x01"}, m)

	assert.NoError(t, p.Delete([]byte("num")))
	assert.Empty(t, m)

	_, err := Bucket("head.").NewGetter(m).Get([]byte("num"))
	assert.True(t, Bucket("x").NewGetter(m).IsNotFound(err))
}

type memBulk struct {
	mem
	written bool
}

func (b *memBulk) EnableAutoFlush() {}
func (b *memBulk) Write() error     { b.written = true; return nil }

type memStore struct {
	mem
	bulk *memBulk
}

func (s *memStore) Snapshot() Snapshot       { return &memSnapshot{s.mem} }
func (s *memStore) Bulk() Bulk               { return s.bulk }
func (s *memStore) Iterate(r Range) Iterator { panic("not implemented") }

type memSnapshot struct{ mem }

func (memSnapshot) Release() {}

func TestBucket_Store(t *testing.T) {
	m := mem{"a.k": "v", "b.k": "w"}
	src := &memStore{m, &memBulk{mem: m}}
	store := Bucket("a.").NewStore(src)

	v, err := store.Snapshot().Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, "v", string(v))

	bulk := store.Bulk()
	assert.NoError(t, bulk.Put([]byte("x"), []byte("y")))
	assert.NoError(t, bulk.Write())
	assert.True(t, src.bulk.written)
	assert.Equal(t, "y", m["a.x"])
}
