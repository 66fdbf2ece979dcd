// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sarcophagus-org/sarco-ledger/api/utils"
	"github.com/sarcophagus-org/sarco-ledger/chain"
	"github.com/sarcophagus-org/sarco-ledger/sarco"
)

type Head struct {
	GenesisID sarco.Bytes32 `json:"genesisId"`
	Number    uint32        `json:"number"`
	Time      uint64        `json:"time"`
	Size      uint32        `json:"size"`
}

type Node struct {
	chain *chain.Chain
}

func New(chain *chain.Chain) *Node {
	return &Node{chain}
}

func (n *Node) handleGetHead(w http.ResponseWriter, _ *http.Request) error {
	head := n.chain.Head()
	return utils.WriteJSON(w, &Head{
		GenesisID: n.chain.GenesisID(),
		Number:    head.Number,
		Time:      head.Time,
		Size:      head.Size,
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /head").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetHead))
}
