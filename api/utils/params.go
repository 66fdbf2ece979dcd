// Copyright (c) 2025 The sarco-ledger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

// AddressVar parses the path variable name as an address.
func AddressVar(req *http.Request, name string) (sarco.Address, error) {
	addr, err := sarco.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return sarco.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return *addr, nil
}

// IndexQuery parses the optional query param "index", which must not exceed head.
func IndexQuery(req *http.Request, head uint32) (*uint32, error) {
	s := req.URL.Query().Get("index")
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, BadRequest(errors.WithMessage(err, "index"))
	}
	if uint32(n) > head {
		return nil, BadRequest(errors.Errorf("index: %d exceeds head %d", n, head))
	}
	index := uint32(n)
	return &index, nil
}

// Uint64Query parses the optional uint64 query param name, returning def if absent.
func Uint64Query(req *http.Request, name string, def uint64) (uint64, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	if n > math.MaxInt64 {
		return 0, BadRequest(errors.Errorf("%s: exceeds the maximum allowed value of %d", name, int64(math.MaxInt64)))
	}
	return n, nil
}
