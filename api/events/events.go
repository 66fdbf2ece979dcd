// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/logdb"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

// parseFilter reads the filter from the query string.
func (e *Events) parseFilter(req *http.Request) (*logdb.EventFilter, error) {
	query := req.URL.Query()
	filter := &logdb.EventFilter{Order: logdb.ASC}

	switch order := logdb.Order(query.Get("order")); order {
	case "", logdb.ASC:
	case logdb.DESC:
		filter.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unsupported value %q", order))
	}

	if query.Has("from") || query.Has("to") || query.Has("unit") {
		rng := &logdb.Range{Unit: logdb.Block}
		switch unit := logdb.RangeType(query.Get("unit")); unit {
		case "", logdb.Block:
		case logdb.Time:
			rng.Unit = logdb.Time
		default:
			return nil, utils.BadRequest(fmt.Errorf("unit: unsupported value %q", unit))
		}
		var err error
		if rng.From, err = utils.Uint64Query(req, "from", 0); err != nil {
			return nil, err
		}
		if rng.To, err = utils.Uint64Query(req, "to", math.MaxInt64); err != nil {
			return nil, err
		}
		if rng.From > rng.To {
			return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
		}
		filter.Range = rng
	}

	if query.Has("address") || query.Has("name") {
		criteria := &logdb.EventCriteria{Name: query.Get("name")}
		if s := query.Get("address"); s != "" {
			addr, err := sarco.ParseAddress(s)
			if err != nil {
				return nil, utils.BadRequest(errors.WithMessage(err, "address"))
			}
			criteria.Address = addr
		}
		filter.CriteriaSet = []*logdb.EventCriteria{criteria}
	}

	offset, err := utils.Uint64Query(req, "offset", 0)
	if err != nil {
		return nil, err
	}
	// one more than the limit to detect the overflow
	limit, err := utils.Uint64Query(req, "limit", e.limit+1)
	if err != nil {
		return nil, err
	}
	if query.Has("limit") && limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}
	filter.Options = &logdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}

	events, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	// ensure the result size is less than the configured limit
	if len(events) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered logs exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}

	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = NewFilteredEvent(ev)
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /logs/event").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
