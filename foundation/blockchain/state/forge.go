package state

import (
	"context"

	"github.com/arborchain/arbor/foundation/blockchain/database"
)

// Forge performs the proof of work to produce the next block on top of
// the longest chain, paying the scheduled reward to the specified public
// key, and adds the result to the chain. Pending transactions that still
// apply are carried into the block.
func (s *State) Forge(ctx context.Context, rewardPubKey database.PublicKey) (database.Block, error) {
	s.evHandler("state: Forge: started")
	defer s.evHandler("state: Forge: completed")

	// Work from a snapshot. The chain value is immutable, so mining can
	// run without holding the state lock; AddBlock re-validates against
	// whatever the chain is by the time the work is done.
	c := s.RetrieveChain()
	ancestors := c.LongestChain()

	// Pick the pending transactions that apply in sequence on top of the
	// longest chain. A transaction invalidated by an earlier pick is left
	// for a later block.
	var txs []database.Tx
	utxo := database.AccumulateUTXO(ancestors)
	for _, tx := range s.mempool.PickBest() {
		next, err := utxo.ApplyTransaction(tx)
		if err != nil {
			continue
		}
		utxo = next
		txs = append(txs, tx)
	}

	gen := c.Genesis()
	coinbase := database.CoinbaseTx{
		{Value: gen.TargetReward(uint64(len(ancestors)) + 1), SignaturePubKey: rewardPubKey},
	}

	b, err := database.POW(ctx, gen, ancestors, coinbase, txs, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	if err := s.AddBlock(b); err != nil {
		return database.Block{}, err
	}

	return b, nil
}
