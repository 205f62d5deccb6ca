// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/arborchain/arbor/app/services/node/handlers/v1/private"
	"github.com/arborchain/arbor/app/services/node/handlers/v1/public"
	"github.com/arborchain/arbor/foundation/blockchain/state"
	"github.com/arborchain/arbor/foundation/events"
	"github.com/arborchain/arbor/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/blocks", pbl.LongestChain)
	app.Handle(http.MethodGet, version, "/chains", pbl.Chains)
	app.Handle(http.MethodGet, version, "/balances", pbl.Balances)
	app.Handle(http.MethodGet, version, "/balances/:pubkey", pbl.Balances)
	app.Handle(http.MethodGet, version, "/utxo", pbl.UnspentOutputs)
	app.Handle(http.MethodGet, version, "/utxo/:pubkey", pbl.UnspentOutputs)
	app.Handle(http.MethodGet, version, "/mempool", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)
}

// PrivateRoutes binds all the version 1 private routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodPost, version, "/block/submit", prv.SubmitBlock)
	app.Handle(http.MethodPost, version, "/forge", prv.Forge)
}
