// Package private maintains the group of handlers for node to node
// access.
package private

import (
	"context"
	"errors"
	"net/http"

	"github.com/arborchain/arbor/business/sys/validate"
	"github.com/arborchain/arbor/business/web/errs"
	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/state"
	"github.com/arborchain/arbor/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of private node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// SubmitBlock accepts a block forged elsewhere, validates it, and splices
// it into the tree.
func (h Handlers) SubmitBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var b database.Block
	if err := web.Decode(r, &b); err != nil {
		return err
	}

	h.Log.Infow("add block", "traceid", v.TraceID, "block", b.Hash())
	if err := h.State.AddBlock(b); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, database.ErrBlockAlreadyExists) {
			status = http.StatusConflict
		}
		return errs.NewTrusted(err, status)
	}

	resp := struct {
		Status string `json:"status"`
		Block  string `json:"block"`
	}{
		Status: "block accepted",
		Block:  b.Hash(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// =============================================================================

// forgeRequest asks the node to perform the proof of work for the next
// block on the longest chain.
type forgeRequest struct {
	RewardPubKey string `json:"rewardPubKey" validate:"required"`
}

// Validate checks the forge request has well formed fields.
func (fr forgeRequest) Validate() error {
	return validate.Check(fr)
}

// Forge performs the proof of work for the next block on the longest
// chain, paying the scheduled reward to the specified public key.
func (h Handlers) Forge(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var fr forgeRequest
	if err := web.Decode(r, &fr); err != nil {
		return err
	}

	h.Log.Infow("forge block", "traceid", v.TraceID, "rewardPubKey", fr.RewardPubKey)

	b, err := h.State.Forge(ctx, database.PublicKey(fr.RewardPubKey))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, b, http.StatusOK)
}
