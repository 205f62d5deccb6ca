package public

import (
	"github.com/arborchain/arbor/business/sys/validate"
	"github.com/arborchain/arbor/foundation/blockchain/database"
)

// submitTxRef identifies the output a submitted transaction spends.
type submitTxRef struct {
	SourceHash   string `json:"sourceHash" validate:"required"`
	FromCoinbase bool   `json:"fromCoinbase"`
	Index        uint64 `json:"index"`
}

// submitTxIn spends a referenced output.
type submitTxIn struct {
	Ref       submitTxRef `json:"ref"`
	Signature string      `json:"signature" validate:"required"`
}

// submitTxOut credits value to a public key.
type submitTxOut struct {
	Value           uint64 `json:"value"`
	SignaturePubKey string `json:"signaturePubKey" validate:"required"`
}

// submitTx is what clients post to add a transaction to the mempool.
type submitTx struct {
	Ins  []submitTxIn  `json:"ins" validate:"required,min=1,dive"`
	Outs []submitTxOut `json:"outs" validate:"required,min=1,dive"`
}

// Validate checks the submitted transaction has well formed fields.
func (tx submitTx) Validate() error {
	return validate.Check(tx)
}

// toDatabaseTx converts the request model into the database transaction.
func (tx submitTx) toDatabaseTx() database.Tx {
	ins := make([]database.TxIn, len(tx.Ins))
	for i, in := range tx.Ins {
		ins[i] = database.TxIn{
			Ref: database.TxOutRef{
				SourceHash:   in.Ref.SourceHash,
				FromCoinbase: in.Ref.FromCoinbase,
				Index:        in.Ref.Index,
			},
			Signature: in.Signature,
		}
	}

	outs := make([]database.TxOut, len(tx.Outs))
	for i, out := range tx.Outs {
		outs[i] = database.TxOut{
			Value:           out.Value,
			SignaturePubKey: database.PublicKey(out.SignaturePubKey),
		}
	}

	return database.Tx{Ins: ins, Outs: outs}
}

// =============================================================================

// balances is the response form for the balances endpoint.
type balances struct {
	LongestChainTip string                        `json:"longestChainTip"`
	Balances        map[database.PublicKey]uint64 `json:"balances"`
}
