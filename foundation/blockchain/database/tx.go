package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/arborchain/arbor/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PublicKey is the hex encoded uncompressed public key a transaction
// output is locked to.
type PublicKey string

// =============================================================================

// TxOut represents value credited to the owner of a public key.
type TxOut struct {
	Value           uint64    `json:"value"`           // Monetary value held by this output.
	SignaturePubKey PublicKey `json:"signaturePubKey"` // Key whose signature can spend this output.
}

// TxOutRef is the coordinate of a specific transaction output. The source
// hash is tagged by whether the output was produced by a coinbase or by an
// ordinary transaction, and two refs are only equal when the tags match.
type TxOutRef struct {
	SourceHash   string `json:"sourceHash"`   // Hash of the producing transaction.
	FromCoinbase bool   `json:"fromCoinbase"` // Source tag: coinbase or ordinary transaction.
	Index        uint64 `json:"index"`        // Position within the producing transaction's outputs.
}

// TxIn spends a referenced output by presenting a signature valid for the
// output's public key.
type TxIn struct {
	Ref       TxOutRef `json:"ref"`
	Signature string   `json:"signature"`
}

// =============================================================================

// CoinbaseTx is the block reward transaction. It has no inputs and a
// non-empty ordered sequence of outputs.
type CoinbaseTx []TxOut

// Hash returns the unique hash for the coinbase transaction.
func (cb CoinbaseTx) Hash() string {
	return signature.Hash(cb)
}

// SumValue returns the total value credited by the coinbase transaction.
func (cb CoinbaseTx) SumValue() uint64 {
	var sum uint64
	for _, out := range cb {
		sum += out.Value
	}

	return sum
}

// =============================================================================

// Tx is an ordinary transaction: a non-empty sequence of inputs spending
// existing outputs and a non-empty sequence of new outputs.
type Tx struct {
	Ins  []TxIn  `json:"ins"`
	Outs []TxOut `json:"outs"`
}

// NewTx constructs an unsigned transaction spending the specified refs.
func NewTx(refs []TxOutRef, outs []TxOut) (Tx, error) {
	if len(refs) == 0 {
		return Tx{}, errors.New("transaction needs at least one input")
	}
	if len(outs) == 0 {
		return Tx{}, errors.New("transaction needs at least one output")
	}

	ins := make([]TxIn, len(refs))
	for i, ref := range refs {
		ins[i] = TxIn{Ref: ref}
	}

	return Tx{Ins: ins, Outs: outs}, nil
}

// Sign uses the specified private key to sign every input of the
// transaction. Every input receives the same signature, replacing any
// signature it carried before; an input whose referenced output is locked
// to a different key does not verify.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (Tx, error) {
	sig, err := signature.Sign(tx.signingPayload(), privateKey)
	if err != nil {
		return Tx{}, err
	}

	ins := make([]TxIn, len(tx.Ins))
	for i, in := range tx.Ins {
		ins[i] = TxIn{Ref: in.Ref, Signature: sig}
	}

	return Tx{Ins: ins, Outs: tx.Outs}, nil
}

// VerifyInput checks the input's signature authorizes spending the
// specified output.
func (tx Tx) VerifyInput(in TxIn, out TxOut) error {
	return signature.Verify(tx.signingPayload(), in.Signature, string(out.SignaturePubKey))
}

// HashString returns the unique hash for the transaction. Output refs
// produced by this transaction use this hash as their source.
func (tx Tx) HashString() string {
	return signature.Hash(tx)
}

// signingPayload is the canonical message every input signature is
// produced over: the transaction without its signatures.
func (tx Tx) signingPayload() any {
	refs := make([]TxOutRef, len(tx.Ins))
	for i, in := range tx.Ins {
		refs[i] = in.Ref
	}

	return struct {
		Ins  []TxOutRef `json:"ins"`
		Outs []TxOut    `json:"outs"`
	}{
		Ins:  refs,
		Outs: tx.Outs,
	}
}

// =============================================================================
// Merkle tree support.

// Hash implements the merkle Hashable interface for providing a hash of
// a transaction.
func (tx Tx) Hash() ([]byte, error) {
	return hexutil.Decode(signature.Hash(tx))
}

// Equals implements the merkle Hashable interface for providing an
// equality check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return signature.Hash(tx) == signature.Hash(otherTx)
}
