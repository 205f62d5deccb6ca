// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/arborchain/arbor/business/web/errs"
	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/state"
	"github.com/arborchain/arbor/foundation/events"
	"github.com/arborchain/arbor/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the chain configuration.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// LongestChain returns the blocks of the path the node considers the
// main chain.
func (h Handlers) LongestChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.QueryLongestChain()
	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Chains returns every root-to-leaf path in the block tree.
func (h Handlers) Chains(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	paths := h.State.QueryChains()
	return web.Respond(ctx, w, paths, http.StatusOK)
}

// Balances returns the unspent value held per public key, optionally
// restricted to one key.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pubKey := database.PublicKey(web.Param(r, "pubkey"))

	longest := h.State.QueryLongestChain()

	resp := balances{
		LongestChainTip: longest[len(longest)-1].Hash(),
		Balances:        h.State.QueryBalances(pubKey),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// UnspentOutputs returns the unspent outputs grouped by public key,
// optionally restricted to one key.
func (h Handlers) UnspentOutputs(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pubKey := database.PublicKey(web.Param(r, "pubkey"))

	groups := h.State.QueryUnspentOutputs(pubKey)
	return web.Respond(ctx, w, groups, http.StatusOK)
}

// Mempool returns the set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// SubmitTransaction validates a transaction against the longest chain and
// adds it to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx submitTx
	if err := web.Decode(r, &tx); err != nil {
		return err
	}

	dbTx := tx.toDatabaseTx()

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", dbTx.HashString())
	if err := h.State.SubmitTransaction(dbTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		Tx     string `json:"tx"`
	}{
		Status: "transaction added to mempool",
		Tx:     dbTx.HashString(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
