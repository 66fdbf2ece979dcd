// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/log"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10
)

type msgReader interface {
	Read() (msgs []any, hasMore bool, err error)
}

type Subscriptions struct {
	backtraceLimit uint32
	chain          *chain.Chain
	upgrader       *websocket.Upgrader
	blockCache     *messageCache
	done           chan struct{}
	wg             sync.WaitGroup
}

func New(chain *chain.Chain, allowedOrigins []string, backtraceLimit uint32) *Subscriptions {
	return &Subscriptions{
		backtraceLimit: backtraceLimit,
		chain:          chain,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		blockCache: newMessageCache(backtraceLimit),
		done:       make(chan struct{}),
	}
}

// parsePosition parses the block number to start from. Empty means head.
func (s *Subscriptions) parsePosition(posStr string) (uint32, error) {
	head := s.chain.Head().Number
	if posStr == "" {
		return head, nil
	}
	n, err := strconv.ParseUint(posStr, 10, 32)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pos"))
	}
	pos := uint32(n)
	if pos > head {
		return 0, utils.BadRequest(errors.Errorf("pos: %d beyond head %d", pos, head))
	}
	if head-pos > s.backtraceLimit {
		return 0, utils.Forbidden(errors.New("pos: backtrace limit exceeded"))
	}
	return pos, nil
}

func (s *Subscriptions) handleEventReader(req *http.Request) (*eventReader, error) {
	position, err := s.parsePosition(req.URL.Query().Get("pos"))
	if err != nil {
		return nil, err
	}
	filter := &EventFilter{Name: req.URL.Query().Get("name")}
	if addr := req.URL.Query().Get("address"); addr != "" {
		if filter.Address, err = sarco.ParseAddress(addr); err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "address"))
		}
	}
	return newEventReader(req.Context(), s.chain, position, filter), nil
}

func (s *Subscriptions) handleBlockReader(req *http.Request) (*blockReader, error) {
	position, err := s.parsePosition(req.URL.Query().Get("pos"))
	if err != nil {
		return nil, err
	}
	return newBlockReader(s.chain, position, s.blockCache), nil
}

func (s *Subscriptions) handleSubject(w http.ResponseWriter, req *http.Request) error {
	s.wg.Add(1)
	defer s.wg.Done()

	var (
		reader msgReader
		err    error
	)
	switch mux.Vars(req)["subject"] {
	case "block":
		reader, err = s.handleBlockReader(req)
	case "event":
		reader, err = s.handleEventReader(req)
	default:
		return utils.HTTPError(errors.New("not found"), http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	conn, closed, err := s.setupConn(w, req)
	// the upgrader has already responded on error
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}

	err = s.pipe(conn, reader, closed)
	s.closeConn(conn, err)
	return nil
}

func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}
	metricActiveConns().Add(1)

	closed := make(chan struct{})
	// read loop, to handle close and pong
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer metricActiveConns().Add(-1)

		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read", "err", err)
				close(closed)
				return
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	var msg []byte
	if err != nil {
		msg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	} else {
		msg = websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	}
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		logger.Debug("write close message", "err", err)
	}
	if err := conn.Close(); err != nil {
		logger.Debug("close websocket", "err", err)
	}
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader msgReader, closed chan struct{}) error {
	ticker := s.chain.NewTicker()
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		msgs, hasMore, err := reader.Read()
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
			metricMessagesSent().Add(1)
		}

		if hasMore {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			default:
			}
			continue
		}

		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-ticker.C():
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close stops all subscriptions and waits for their connections to close.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{subject}").
		Methods(http.MethodGet).
		Name("WS /subscriptions/{subject}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubject))
}
