package chain

import (
	"github.com/arborchain/arbor/foundation/blockchain/database"
)

// OwnedOutput pairs an unspent output with the ref that identifies it.
type OwnedOutput struct {
	Ref database.TxOutRef `json:"ref"`
	Out database.TxOut    `json:"out"`
}

// =============================================================================

// Flatten enumerates every root-to-leaf path in the tree, in pre-order.
// There is always at least one path and every path starts at the genesis
// block.
func (c Chain) Flatten() [][]database.Block {
	var paths [][]database.Block

	var walk func(prefix []database.Block, n Node)
	walk = func(prefix []database.Block, n Node) {
		path := appendBlock(prefix, n.Block)

		if len(n.Nodes) == 0 {
			paths = append(paths, path)
			return
		}

		for _, child := range n.Nodes {
			walk(path, child)
		}
	}

	walk(nil, c.root)

	return paths
}

// LongestChain returns the root-to-leaf path maximizing length, then the
// sum of difficulties. Remaining ties break by encounter order in
// Flatten, keeping the first maximum.
func (c Chain) LongestChain() []database.Block {
	var best []database.Block
	var bestDifficulty uint64

	for _, path := range c.Flatten() {
		var difficulty uint64
		for _, b := range path {
			difficulty += b.Header.Difficulty
		}

		switch {
		case best == nil:
		case len(path) < len(best):
			continue
		case len(path) == len(best) && difficulty <= bestDifficulty:
			continue
		}

		best = path
		bestDifficulty = difficulty
	}

	return best
}

// =============================================================================

// UnspentOutputs groups the longest chain's unspent outputs by the public
// key that can spend them, preserving the order in which the outputs were
// produced within each group.
func (c Chain) UnspentOutputs() map[database.PublicKey][]OwnedOutput {
	longest := c.LongestChain()
	utxo := database.AccumulateUTXO(longest)

	groups := make(map[database.PublicKey][]OwnedOutput)
	seen := make(map[database.TxOutRef]bool)

	// Walk the chain again in production order so each group lists its
	// outputs in the order they were created.
	appendRef := func(ref database.TxOutRef) {
		out, unspent := utxo[ref]
		if !unspent || seen[ref] {
			return
		}
		seen[ref] = true
		groups[out.SignaturePubKey] = append(groups[out.SignaturePubKey], OwnedOutput{Ref: ref, Out: out})
	}

	for _, b := range longest {
		cbHash := b.Coinbase.Hash()
		for i := range b.Coinbase {
			appendRef(database.TxOutRef{SourceHash: cbHash, FromCoinbase: true, Index: uint64(i)})
		}

		for _, tx := range b.Txs {
			txHash := tx.HashString()
			for i := range tx.Outs {
				appendRef(database.TxOutRef{SourceHash: txHash, FromCoinbase: false, Index: uint64(i)})
			}
		}
	}

	return groups
}

// AddressValues sums the unspent value held by each public key over the
// longest chain.
func (c Chain) AddressValues() map[database.PublicKey]uint64 {
	values := make(map[database.PublicKey]uint64)

	utxo := database.AccumulateUTXO(c.LongestChain())
	for _, out := range utxo {
		values[out.SignaturePubKey] += out.Value
	}

	return values
}

// =============================================================================

// ValidateTransaction checks the transaction applies to the longest
// chain's unspent outputs.
func (c Chain) ValidateTransaction(tx database.Tx) error {
	return c.ValidateTransactions([]database.Tx{tx})
}

// ValidateTransactions checks the transactions apply in sequence to the
// longest chain's unspent outputs, later transactions seeing the outputs
// of earlier ones.
func (c Chain) ValidateTransactions(txs []database.Tx) error {
	utxo := database.AccumulateUTXO(c.LongestChain())

	for _, tx := range txs {
		next, err := utxo.ApplyTransaction(tx)
		if err != nil {
			return err
		}
		utxo = next
	}

	return nil
}
