// Package state is the core API for the node and implements the single
// actor that owns the current chain. Chain values are immutable; the state
// serializes every mutation and swaps the value it holds.
package state

import (
	"fmt"
	"sync"

	"github.com/arborchain/arbor/foundation/blockchain/chain"
	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/genesis"
	"github.com/arborchain/arbor/foundation/blockchain/mempool"
	"github.com/arborchain/arbor/foundation/blockchain/storage"
)

// EventHandler defines a function that is called when events occur in the
// processing of blocks and transactions.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the node state.
type Config struct {
	StorePath string
	EvHandler EventHandler
}

// State manages the blockchain node's view of the chain.
type State struct {
	mu sync.Mutex

	evHandler EventHandler
	store     *storage.Store
	mempool   *mempool.Mempool
	chain     chain.Chain
}

// New constructs the state by loading the blockchain document from disk
// and running it through the validation gate.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	strg, err := storage.New(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	data, err := strg.Load()
	if err != nil {
		return nil, err
	}

	unverified, err := chain.Decode(data)
	if err != nil {
		return nil, err
	}

	verified, err := chain.Verify(unverified, ev)
	if err != nil {
		return nil, fmt.Errorf("verifying blockchain document: %w", err)
	}

	state := State{
		evHandler: ev,
		store:     strg,
		mempool:   mempool.New(),
		chain:     verified,
	}

	return &state, nil
}

// Shutdown cleanly brings the state down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	return nil
}

// =============================================================================

// AddBlock validates the block, splices it into the tree, and persists
// the grown chain. Calls are linearized; each call observes the complete
// effect of the previous one.
func (s *State) AddBlock(b database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: AddBlock: blk[%s] prev[%s]", b.Hash(), b.Header.PrevBlockHeaderHash)

	next, err := s.chain.AddBlock(b, s.evHandler)
	if err != nil {
		return err
	}

	data, err := next.Encode()
	if err != nil {
		return fmt.Errorf("encoding blockchain document: %w", err)
	}
	if err := s.store.Save(data); err != nil {
		return err
	}

	s.chain = next

	// Transactions carried by the accepted block are no longer pending,
	// and pending transactions that now double spend are dropped.
	for _, tx := range b.Txs {
		s.mempool.Delete(tx)
	}
	for _, tx := range s.mempool.PickBest() {
		if err := s.chain.ValidateTransaction(tx); err != nil {
			s.mempool.Delete(tx)
		}
	}

	return nil
}

// SubmitTransaction validates the transaction against the longest chain
// and adds it to the mempool.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SubmitTransaction: tx[%s]", tx.HashString())

	if err := s.chain.ValidateTransaction(tx); err != nil {
		return err
	}

	s.mempool.Upsert(tx)
	return nil
}

// =============================================================================

// RetrieveGenesis returns the chain configuration.
func (s *State) RetrieveGenesis() genesis.Genesis {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain.Genesis()
}

// RetrieveChain returns the current verified chain value. The value is
// immutable and safe to read without further coordination.
func (s *State) RetrieveChain() chain.Chain {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain
}

// RetrieveMempool returns a copy of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.PickBest()
}
