// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/log"
)

var logger = log.WithContext("pkg", "api-utils")

// statusError carries the status a handler wants to respond with.
type statusError struct {
	error
	status int
}

// HTTPError attaches an http status to cause.
func HTTPError(cause error, status int) error {
	return &statusError{cause, status}
}

func BadRequest(cause error) error { return HTTPError(cause, http.StatusBadRequest) }

func Forbidden(cause error) error { return HTTPError(cause, http.StatusForbidden) }

// HandlerFunc is an http.HandlerFunc that may fail. Errors built by HTTPError
// are answered with their status and anything else with 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc adapts f to net/http.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		var se *statusError
		if errors.As(err, &se) {
			http.Error(w, se.Error(), se.status)
			return
		}
		logger.Debug("internal error", "uri", r.URL.String(), "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

const jsonContentType = "application/json; charset=utf-8"

// WriteJSON encodes obj as the response body.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", jsonContentType)
	return json.NewEncoder(w).Encode(obj)
}
