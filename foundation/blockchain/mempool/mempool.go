// Package mempool maintains the pool of candidate transactions waiting to
// be included in a forged block.
package mempool

import (
	"sort"
	"sync"

	"github.com/arborchain/arbor/foundation/blockchain/database"
)

// Mempool represents a cache of transactions organized by transaction
// hash. Transactions in the pool have been validated against the chain at
// submission time; they are re-checked when a block is forged.
type Mempool struct {
	mu   sync.RWMutex
	pool map[string]database.Tx
}

// New constructs a new mempool for pending transactions.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]database.Tx),
	}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the pool.
func (mp *Mempool) Upsert(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[tx.HashString()] = tx
}

// Delete removes a transaction from the pool.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, tx.HashString())
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.Tx)
}

// PickBest returns a copy of the pool ordered by transaction hash. The
// ordering carries no economic meaning since the protocol has no fees; it
// exists so two nodes forging from the same pool pick the same sequence.
func (mp *Mempool) PickBest() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	hashes := make([]string, 0, len(mp.pool))
	for hash := range mp.pool {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	txs := make([]database.Tx, len(hashes))
	for i, hash := range hashes {
		txs[i] = mp.pool[hash]
	}

	return txs
}
