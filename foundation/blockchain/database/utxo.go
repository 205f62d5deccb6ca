package database

import "fmt"

// UTXO is the set of unspent transaction outputs produced by a linear
// sequence of blocks, keyed by the ref that uniquely identifies each
// output.
type UTXO map[TxOutRef]TxOut

// AccumulateUTXO folds the specified blocks, in order, into the set of
// unspent transaction outputs they produce. The blocks are expected to
// come from a validated chain; a transaction that fails to apply here is
// an internal invariant violation.
func AccumulateUTXO(blocks []Block) UTXO {
	utxo := make(UTXO)

	for _, block := range blocks {
		utxo.creditCoinbase(block.Coinbase)

		for _, tx := range block.Txs {
			next, err := utxo.ApplyTransaction(tx)
			if err != nil {
				panic(fmt.Sprintf("utxo: validated block carries unappliable transaction %s: %s", tx.HashString(), err))
			}
			utxo = next
		}
	}

	return utxo
}

// ApplyTransaction validates the transaction against the current unspent
// outputs and returns a new set with the inputs spent and the new outputs
// credited. The receiver is never modified.
func (u UTXO) ApplyTransaction(tx Tx) (UTXO, error) {

	// Look up and authorize every input before touching anything.
	var inSum uint64
	for _, in := range tx.Ins {
		out, exists := u[in.Ref]
		if !exists {
			return nil, ErrTxOutRefNotFound
		}

		if err := tx.VerifyInput(in, out); err != nil {
			return nil, ErrInvalidTxSignature
		}

		inSum += out.Value
	}

	// The inputs must cover the outputs. Any excess is burned; the
	// protocol does not route fees to the miner.
	var outSum uint64
	for _, out := range tx.Outs {
		outSum += out.Value
	}
	if inSum < outSum {
		return nil, ErrInvalidTxValues
	}

	next := make(UTXO, len(u)+len(tx.Outs))
	for ref, out := range u {
		next[ref] = out
	}

	for _, in := range tx.Ins {
		if _, exists := next[in.Ref]; !exists {
			panic(fmt.Sprintf("utxo: deleting unknown transaction out ref %v", in.Ref))
		}
		delete(next, in.Ref)
	}

	txHash := tx.HashString()
	for i, out := range tx.Outs {
		next[TxOutRef{SourceHash: txHash, FromCoinbase: false, Index: uint64(i)}] = out
	}

	return next, nil
}

// SumValue returns the total unspent value held in the set.
func (u UTXO) SumValue() uint64 {
	var sum uint64
	for _, out := range u {
		sum += out.Value
	}

	return sum
}

// creditCoinbase inserts the coinbase outputs into the set. A duplicate
// coinbase ref merges by summing values and keeping the shared key; this
// keeps the accumulator total on structurally valid but semantically weird
// chains that repeat a coinbase hash.
func (u UTXO) creditCoinbase(cb CoinbaseTx) {
	cbHash := cb.Hash()

	for i, out := range cb {
		ref := TxOutRef{SourceHash: cbHash, FromCoinbase: true, Index: uint64(i)}

		if existing, exists := u[ref]; exists {
			out.Value += existing.Value
		}
		u[ref] = out
	}
}
