// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key value storage the ledger persists into.
package kv

type (
	// Getter reads keys. A missing key is an error recognized by IsNotFound.
	Getter interface {
		Get(key []byte) ([]byte, error)
		Has(key []byte) (bool, error)
		IsNotFound(err error) bool
	}

	Putter interface {
		Put(key, val []byte) error
		Delete(key []byte) error
	}

	// Snapshot is a frozen view, it must be released after use.
	Snapshot interface {
		Getter
		Release()
	}

	// Bulk buffers writes until Write, which applies them atomically. With
	// auto flush, large bulks are written in several batches instead.
	Bulk interface {
		Putter
		EnableAutoFlush()
		Write() error
	}

	// Iterator walks keys in ascending order.
	Iterator interface {
		Next() bool
		Key() []byte
		Value() []byte
		Release()
		Error() error
	}

	Store interface {
		Getter
		Putter
		Snapshot() Snapshot
		Bulk() Bulk
		Iterate(r Range) Iterator
	}

	StoreCloser interface {
		Store
		Close() error
	}
)

// Range spans the keys in [Start, Limit). An empty Limit is unbounded.
type Range struct {
	Start []byte
	Limit []byte
}
