package state

import (
	"github.com/arborchain/arbor/foundation/blockchain/chain"
	"github.com/arborchain/arbor/foundation/blockchain/database"
)

// QueryLongestChain returns the root-to-leaf path the node considers the
// main chain.
func (s *State) QueryLongestChain() []database.Block {
	return s.RetrieveChain().LongestChain()
}

// QueryChains returns every root-to-leaf path in the tree.
func (s *State) QueryChains() [][]database.Block {
	return s.RetrieveChain().Flatten()
}

// QueryBalances returns the unspent value held by each public key on the
// longest chain. If a public key is specified, the result is restricted
// to that key.
func (s *State) QueryBalances(publicKey database.PublicKey) map[database.PublicKey]uint64 {
	values := s.RetrieveChain().AddressValues()

	if publicKey == "" {
		return values
	}

	restricted := map[database.PublicKey]uint64{}
	if value, exists := values[publicKey]; exists {
		restricted[publicKey] = value
	}

	return restricted
}

// QueryUnspentOutputs returns the unspent outputs on the longest chain
// grouped by public key. If a public key is specified, the result is
// restricted to that key.
func (s *State) QueryUnspentOutputs(publicKey database.PublicKey) map[database.PublicKey][]chain.OwnedOutput {
	groups := s.RetrieveChain().UnspentOutputs()

	if publicKey == "" {
		return groups
	}

	restricted := map[database.PublicKey][]chain.OwnedOutput{}
	if outputs, exists := groups[publicKey]; exists {
		restricted[publicKey] = outputs
	}

	return restricted
}
