// Package database maintains the block, transaction, and unspent output
// types along with the consensus rules a block must satisfy before it can
// join a chain.
package database

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/arborchain/arbor/foundation/blockchain/genesis"
	"github.com/arborchain/arbor/foundation/blockchain/merkle"
	"github.com/arborchain/arbor/foundation/blockchain/signature"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	PrevBlockHeaderHash string `json:"prevBlockHeaderHash"`     // Hash of the parent block's header.
	CoinbaseTxHash      string `json:"coinbaseTransactionHash"` // Hash of this block's coinbase transaction.
	TxMerkleRoot        string `json:"transactionHashTreeRoot"` // Merkle tree root hash for the ordinary transactions.
	Time                uint64 `json:"time"`                    // Time the block was forged, seconds since Unix epoch.
	Difficulty          uint64 `json:"difficulty"`              // Difficulty this block declares and must meet.
	Nonce               uint64 `json:"nonce"`                   // Value identified to solve the hash solution.
}

// Hash returns the unique hash for the header.
func (bh BlockHeader) Hash() string {

	// CORE NOTE: Hashing the block header and not the whole block so the
	// chain can be cryptographically checked by only needing block headers
	// and not full blocks with the transaction data.

	return signature.Hash(bh)
}

// =============================================================================

// Block represents a group of transactions batched together under a
// header. Transaction order is significant: a transaction spending an
// output produced earlier in the same block must come after its producer.
type Block struct {
	Header   BlockHeader `json:"header"`
	Coinbase CoinbaseTx  `json:"coinbaseTransaction"`
	Txs      []Tx        `json:"transactions"`
}

// Hash returns the unique hash for the block, which is the hash of its
// header.
func (b Block) Hash() string {
	return b.Header.Hash()
}

// Height returns the block's position given its ancestor chain.
func (b Block) Height(ancestors []Block) uint64 {
	return uint64(len(ancestors)) + 1
}

// TxMerkleRootHex computes the merkle tree root for a sequence of
// transactions. An empty sequence has the fixed sentinel root.
func TxMerkleRootHex(txs []Tx) (string, error) {
	if len(txs) == 0 {
		return signature.ZeroHash, nil
	}

	tree, err := merkle.NewTree(txs)
	if err != nil {
		return "", err
	}

	return tree.RootHex(), nil
}

// =============================================================================

// ValidateBlock validates the block for inclusion on top of the specified
// ancestor chain, which runs from the genesis block through the block's
// intended parent. The genesis block itself validates with no ancestors.
func (b Block) ValidateBlock(gen genesis.Genesis, ancestors []Block, evHandler func(v string, args ...any)) error {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	hash := b.Hash()

	ev("database: ValidateBlock: validate: blk[%s]: check: difficulty matches the schedule", hash)

	if b.Header.Difficulty != TargetDifficulty(gen, ancestors) {
		return ErrInvalidDifficultyReference
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: header hash meets the difficulty", hash)

	achieved := HashDifficulty(gen.Difficulty1Target, b.Header)
	if achieved.Cmp(new(big.Int).SetUint64(b.Header.Difficulty)) < 0 {
		return ErrInvalidDifficulty
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: header references the coinbase transaction", hash)

	if b.Coinbase.Hash() != b.Header.CoinbaseTxHash {
		return ErrInvalidCoinbaseTxHash
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: header references the transactions", hash)

	root, err := TxMerkleRootHex(b.Txs)
	if err != nil || root != b.Header.TxMerkleRoot {
		return ErrInvalidTxMerkleRoot
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: coinbase value equals the scheduled reward", hash)

	if b.Coinbase.SumValue() != gen.TargetReward(b.Height(ancestors)) {
		return ErrInvalidCoinbaseTxValue
	}

	if len(ancestors) > 0 {
		ev("database: ValidateBlock: validate: blk[%s]: check: timestamp is after the parent's", hash)

		parent := ancestors[len(ancestors)-1]
		if b.Header.Time <= parent.Header.Time {
			return ErrTimestampTooOld
		}
	}

	ev("database: ValidateBlock: validate: blk[%s]: check: transactions apply to the ancestor utxo", hash)

	// The block's own coinbase outputs are spendable by its transactions,
	// as are outputs produced by earlier transactions in the same block.
	utxo := AccumulateUTXO(ancestors)
	utxo.creditCoinbase(b.Coinbase)

	for _, tx := range b.Txs {
		next, err := utxo.ApplyTransaction(tx)
		if err != nil {
			return err
		}
		utxo = next
	}

	return nil
}

// =============================================================================

// POW constructs the next block on top of the specified ancestor chain and
// performs the work to find a nonce that solves the cryptographic puzzle.
func POW(ctx context.Context, gen genesis.Genesis, ancestors []Block, coinbase CoinbaseTx, txs []Tx, evHandler func(v string, args ...any)) (Block, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	prevBlockHeaderHash := signature.ZeroHash
	blockTime := uint64(time.Now().UTC().Unix())

	if len(ancestors) > 0 {
		parent := ancestors[len(ancestors)-1]
		prevBlockHeaderHash = parent.Hash()

		// Validation requires strict monotonicity against the parent.
		if blockTime <= parent.Header.Time {
			blockTime = parent.Header.Time + 1
		}
	}

	root, err := TxMerkleRootHex(txs)
	if err != nil {
		return Block{}, err
	}

	nb := Block{
		Header: BlockHeader{
			PrevBlockHeaderHash: prevBlockHeaderHash,
			CoinbaseTxHash:      coinbase.Hash(),
			TxMerkleRoot:        root,
			Time:                blockTime,
			Difficulty:          TargetDifficulty(gen, ancestors),
			Nonce:               0, // Will be identified below.
		},
		Coinbase: coinbase,
		Txs:      txs,
	}

	if err := nb.performPOW(ctx, gen.Difficulty1Target, ev); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being
// discovered.
func (b *Block) performPOW(ctx context.Context, diff1 *big.Int, ev func(v string, args ...any)) error {
	ev("database: performPOW: MINING: started")
	defer ev("database: performPOW: MINING: completed")

	// Choose a random starting point for the nonce. After this, the nonce
	// is incremented by 1 until a solution is found.
	nBig, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	if err != nil {
		return err
	}
	b.Header.Nonce = nBig.Uint64()

	target := new(big.Int).SetUint64(b.Header.Difficulty)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: performPOW: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("database: performPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		if HashDifficulty(diff1, b.Header).Cmp(target) < 0 {
			b.Header.Nonce++
			continue
		}

		ev("database: performPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHeaderHash, b.Hash())
		ev("database: performPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}
