package database

import "errors"

// Set of errors a block can be rejected with. These are reported to the
// caller, never retried, and carry no additional context by design so they
// can be matched with errors.Is.
var (
	// ErrBlockAlreadyExists is returned when the block being added is
	// already a child of its parent.
	ErrBlockAlreadyExists = errors.New("block already exists")

	// ErrNoParentFound is returned when no node in the tree carries the
	// header the new block references as its parent.
	ErrNoParentFound = errors.New("no parent found")

	// ErrTimestampTooOld is returned when a block's timestamp is not
	// strictly after its parent's.
	ErrTimestampTooOld = errors.New("timestamp too old")

	// ErrTimestampTooFarIntoFuture is reserved for a wall clock check.
	// TODO: enforce once the core is given a clock source to compare
	// against. Validation does not produce this error today.
	ErrTimestampTooFarIntoFuture = errors.New("timestamp too far into future")

	// ErrInvalidDifficultyReference is returned when a block's declared
	// difficulty doesn't match the scheduled target difficulty.
	ErrInvalidDifficultyReference = errors.New("invalid difficulty reference")

	// ErrInvalidDifficulty is returned when a block's header hash doesn't
	// meet its declared difficulty.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidCoinbaseTxHash is returned when the header's coinbase
	// transaction hash doesn't match the coinbase transaction.
	ErrInvalidCoinbaseTxHash = errors.New("invalid coinbase transaction hash")

	// ErrInvalidTxMerkleRoot is returned when the header's transaction
	// hash tree root doesn't match the block's transactions.
	ErrInvalidTxMerkleRoot = errors.New("invalid transaction hash tree root")

	// ErrInvalidCoinbaseTxValue is returned when the coinbase output sum
	// doesn't equal the scheduled mining reward.
	ErrInvalidCoinbaseTxValue = errors.New("invalid coinbase transaction value")

	// ErrInvalidTxValues is returned when a transaction spends more value
	// than its inputs provide.
	ErrInvalidTxValues = errors.New("invalid transaction values")

	// ErrTxOutRefNotFound is returned when a transaction input references
	// an output that is not unspent.
	ErrTxOutRefNotFound = errors.New("transaction out ref not found")

	// ErrInvalidTxSignature is returned when a transaction input's
	// signature doesn't authorize spending the referenced output.
	ErrInvalidTxSignature = errors.New("invalid transaction signature")
)
