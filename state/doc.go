// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage of builtin contracts.
// It follows the flow as below:
//
//	           o
//	           |
//	  [ revertable state ]
//	           |
//	    [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv bulk ]
//	           |
//	    [ lru cache ]
//	           |
//	    [ kv store ]
//
// Values are stored rlp encoded. An empty raw value means the slot is deleted.
package state
