// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded at blake2b(key, basePos). A missing entry reads as the zero value,
// with pointer values allocated.
type Mapping[K Key, V any] struct {
	context *Context
	basePos sarco.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos sarco.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Position returns the storage position of the entry for key.
func (m *Mapping[K, V]) Position(key K) sarco.Bytes32 {
	return sarco.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.Position(key), func(raw []byte) error {
		if t := reflect.TypeOf(value); t != nil && t.Kind() == reflect.Pointer {
			value = reflect.New(t.Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.Position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Exists reports whether an entry was ever set for key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.Position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
