// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/json"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/sarco"
	"github.com/sarcophagus-org/sarco-ledger/tx"
)

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// an in-memory db lives as long as its connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create event table")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the version of the sqlite library.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// NewestBlockNumber returns the number of the newest block with events written.
func (db *LogDB) NewestBlockNumber(ctx context.Context) (uint32, bool, error) {
	var n sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(blockNumber) FROM event").Scan(&n); err != nil {
		return 0, false, err
	}
	if !n.Valid {
		return 0, false, nil
	}
	return uint32(n.Int64), true, nil
}

// Write stores the events of all non-reverted receipts of a block.
// Events of a block are numbered in the order of receipts.
func (db *LogDB) Write(receipts tx.Receipts) error {
	return db.execInTx(func(sqlTx *sql.Tx) error {
		var index uint32
		for _, r := range receipts {
			if r.Reverted {
				continue
			}
			for _, ev := range r.Events {
				data, err := json.Marshal(ev.Payload)
				if err != nil {
					return errors.WithMessagef(err, "encode event %v", ev.Name())
				}
				if _, err := sqlTx.Exec("INSERT OR REPLACE INTO event(blockNumber, eventIndex, blockTime, clauseIndex, caller, address, name, topic, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);",
					r.BlockNumber,
					index,
					r.BlockTime,
					r.Index,
					r.Caller.Bytes(),
					ev.Address.Bytes(),
					ev.Name(),
					ev.Topic().Bytes(),
					string(data),
				); err != nil {
					return err
				}
				index++
			}
		}
		return nil
	})
}

// Truncate deletes events of blocks after blockNum (included).
func (db *LogDB) Truncate(blockNum uint32) error {
	return db.execInTx(func(sqlTx *sql.Tx) error {
		_, err := sqlTx.Exec("DELETE FROM event WHERE blockNumber >= ?", blockNum)
		return err
	})
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) error {
	sqlTx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(sqlTx); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	return sqlTx.Commit()
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT blockNumber, eventIndex, blockTime, clauseIndex, caller, address, name, topic, data FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY blockNumber ASC, eventIndex ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	if filter.Range != nil {
		condition := "blockNumber"
		if filter.Range.Unit == Time {
			condition = "blockTime"
		}
		args = append(args, filter.Range.From)
		stmt += " AND " + condition + " >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND " + condition + " <= ? "
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			stmt += " AND (( 1"
		} else {
			stmt += " OR ( 1"
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			stmt += " AND address = ? "
		}
		if criteria.Name != "" {
			args = append(args, criteria.Name)
			stmt += " AND name = ? "
		}
		stmt += ")"
	}
	if len(filter.CriteriaSet) > 0 {
		stmt += ")"
	}

	if filter.Order == DESC {
		stmt += " ORDER BY blockNumber DESC, eventIndex DESC "
	} else {
		stmt += " ORDER BY blockNumber ASC, eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			event   Event
			caller  []byte
			address []byte
			topic   []byte
			data    string
		)
		if err := rows.Scan(
			&event.BlockNumber,
			&event.Index,
			&event.BlockTime,
			&event.ClauseIndex,
			&caller,
			&address,
			&event.Name,
			&topic,
			&data,
		); err != nil {
			return nil, err
		}
		event.Caller = sarco.BytesToAddress(caller)
		event.Address = sarco.BytesToAddress(address)
		event.Topic = sarco.BytesToBytes32(topic)
		event.Data = json.RawMessage(data)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
