package chain

import (
	"errors"
	"fmt"

	"github.com/arborchain/arbor/foundation/blockchain/database"
)

// ErrGenesisHasTransactions is returned from Verify when the root block
// carries ordinary transactions.
var ErrGenesisHasTransactions = errors.New("genesis block has transactions")

// GenesisBlockError reports the genesis block failed validation.
type GenesisBlockError struct {
	Err error
}

// Error implements the error interface.
func (e *GenesisBlockError) Error() string {
	return fmt.Sprintf("genesis block: %s", e.Err)
}

// Unwrap exposes the underlying block rejection.
func (e *GenesisBlockError) Unwrap() error {
	return e.Err
}

// BlockValidationError reports a descendant block failed validation while
// replaying the tree.
type BlockValidationError struct {
	Err error
}

// Error implements the error interface.
func (e *BlockValidationError) Error() string {
	return fmt.Sprintf("block validation: %s", e.Err)
}

// Unwrap exposes the underlying block rejection.
func (e *BlockValidationError) Unwrap() error {
	return e.Err
}

// =============================================================================

// Verify turns an unverified tree into a verified chain by validating the
// genesis block and replaying every descendant through the insertion
// path. Descendants are replayed in pre-order; the insertion path locates
// each parent regardless, so the result is structurally equal to the
// input tree modulo the documented sibling re-ordering.
func Verify(u Unverified, evHandler func(v string, args ...any)) (Chain, error) {
	if err := u.Genesis.Validate(); err != nil {
		return Chain{}, fmt.Errorf("chain configuration: %w", err)
	}

	gblock := u.Root.Block

	if len(gblock.Txs) > 0 {
		return Chain{}, ErrGenesisHasTransactions
	}

	if err := gblock.ValidateBlock(u.Genesis, nil, evHandler); err != nil {
		return Chain{}, &GenesisBlockError{Err: err}
	}

	verified := Chain{
		genesis: u.Genesis,
		root:    Node{Block: gblock},
	}

	for _, b := range descendants(u.Root) {
		next, err := verified.AddBlock(b, evHandler)
		if err != nil {
			return Chain{}, &BlockValidationError{Err: err}
		}
		verified = next
	}

	return verified, nil
}

// descendants collects every block below the specified node in pre-order.
func descendants(n Node) []database.Block {
	var blocks []database.Block

	var walk func(n Node)
	walk = func(n Node) {
		blocks = append(blocks, n.Block)
		for _, child := range n.Nodes {
			walk(child)
		}
	}

	for _, child := range n.Nodes {
		walk(child)
	}

	return blocks
}
