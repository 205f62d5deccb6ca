// Package chain maintains the branching tree of blocks rooted at the
// genesis block, the rules for growing it, and the queries derived from
// it. A tree decoded from the outside world is Unverified; only the
// validation gate produces a Chain that can be queried or extended.
package chain

import (
	"errors"
	"fmt"

	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/genesis"
)

// Node is one position in the block tree. A block can have any number of
// children, one per fork growing from it.
type Node struct {
	Block database.Block
	Nodes []Node
}

// =============================================================================

// Unverified is a block tree as constructed from untrusted input. It
// carries no guarantees beyond being structurally well formed and cannot
// be queried for consensus state.
type Unverified struct {
	Genesis genesis.Genesis
	Root    Node
}

// New constructs an unverified chain from a configuration and a root node.
func New(gen genesis.Genesis, root Node) Unverified {
	return Unverified{Genesis: gen, Root: root}
}

// =============================================================================

// Chain is a block tree known to obey the consensus rules. Values are
// immutable: growing the chain yields a new value sharing most of its
// substructure. A Chain is only obtainable through Verify or AddBlock.
type Chain struct {
	genesis genesis.Genesis
	root    Node
}

// Genesis returns the chain configuration.
func (c Chain) Genesis() genesis.Genesis {
	return c.genesis
}

// Root returns the genesis node of the tree.
func (c Chain) Root() Node {
	return c.root
}

// Unverify drops the validation guarantee from the chain. The structure
// is unchanged; this is used for re-serialization.
func (c Chain) Unverify() Unverified {
	return Unverified{Genesis: c.genesis, Root: c.root}
}

// =============================================================================

// AddBlock validates the block against its parent's ancestor chain and
// splices it into the tree as that parent's newest child. The parent is
// located by the header hash the block references; a block whose parent
// is nowhere in the tree is rejected with ErrNoParentFound.
func (c Chain) AddBlock(b database.Block, evHandler func(v string, args ...any)) (Chain, error) {
	root, err := addBlock(c.genesis, nil, c.root, b, evHandler)
	if err != nil {
		return Chain{}, err
	}

	return Chain{genesis: c.genesis, root: root}, nil
}

// addBlock walks the tree looking for the block's parent, carrying the
// chain of blocks from the root to the current node. It returns the
// updated node on success and leaves the tree untouched on failure.
func addBlock(gen genesis.Genesis, priorChain []database.Block, node Node, b database.Block, evHandler func(v string, args ...any)) (Node, error) {

	// Is the current node the parent of the inbound block?
	if node.Block.Hash() == b.Header.PrevBlockHeaderHash {
		for _, child := range node.Nodes {
			if child.Block.Hash() == b.Hash() {
				return Node{}, database.ErrBlockAlreadyExists
			}
		}

		ancestors := appendBlock(priorChain, node.Block)
		if err := b.ValidateBlock(gen, ancestors, evHandler); err != nil {
			return Node{}, err
		}

		// The new child goes first. Test suites may rely on this
		// deterministic re-ordering.
		children := make([]Node, 0, len(node.Nodes)+1)
		children = append(children, Node{Block: b})
		children = append(children, node.Nodes...)

		return Node{Block: node.Block, Nodes: children}, nil
	}

	// Not the parent. Recurse into each child and resolve the collected
	// results. Block hashes are unique under a correct hash oracle, so at
	// most one subtree can accept the block.
	prior := appendBlock(priorChain, node.Block)

	var okCount int
	var okIndex int
	var okNode Node
	var semanticErr error

	for i, child := range node.Nodes {
		newChild, err := addBlock(gen, prior, child, b, evHandler)

		switch {
		case err == nil:
			okCount++
			okIndex = i
			okNode = newChild

		case errors.Is(err, database.ErrNoParentFound):
			// This subtree doesn't hold the parent. Keep the child as is.

		default:
			if semanticErr != nil {
				panic(fmt.Sprintf("chain: block %s rejected along two distinct paths: %s / %s", b.Hash(), semanticErr, err))
			}
			semanticErr = err
		}
	}

	switch {
	case okCount == 1 && semanticErr == nil:
		children := make([]Node, len(node.Nodes))
		copy(children, node.Nodes)
		children[okIndex] = okNode

		return Node{Block: node.Block, Nodes: children}, nil

	case okCount == 0 && semanticErr == nil:
		return Node{}, database.ErrNoParentFound

	case okCount == 0:
		return Node{}, semanticErr

	default:
		panic(fmt.Sprintf("chain: block %s found multiple parents in the tree", b.Hash()))
	}
}

// appendBlock extends a chain of blocks without aliasing the backing
// array of the source slice.
func appendBlock(blocks []database.Block, b database.Block) []database.Block {
	out := make([]database.Block, len(blocks)+1)
	copy(out, blocks)
	out[len(blocks)] = b

	return out
}
