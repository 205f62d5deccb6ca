package chain

import (
	"encoding/json"
	"fmt"

	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/genesis"
)

// blockchainDoc is the wire form of a block tree.
type blockchainDoc struct {
	Config genesis.Genesis `json:"config"`
	Node   nodeDoc         `json:"node"`
}

// nodeDoc is the wire form of one tree node.
type nodeDoc struct {
	Block database.Block `json:"block"`
	Nodes []nodeDoc      `json:"nodes"`
}

// =============================================================================

// Decode consumes the JSON document form of a block tree. Decoding can
// only produce an unverified chain; run the result through Verify before
// querying it.
func Decode(data []byte) (Unverified, error) {
	var doc blockchainDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Unverified{}, fmt.Errorf("decoding blockchain document: %w", err)
	}

	return Unverified{
		Genesis: doc.Config,
		Root:    toNode(doc.Node),
	}, nil
}

// Encode produces the JSON document form of the unverified chain. For a
// canonical document, Encode(Decode(doc)) reproduces the input byte for
// byte.
func (u Unverified) Encode() ([]byte, error) {
	doc := blockchainDoc{
		Config: u.Genesis,
		Node:   toNodeDoc(u.Root),
	}

	return json.Marshal(doc)
}

// Encode produces the JSON document form of the verified chain.
func (c Chain) Encode() ([]byte, error) {
	return c.Unverify().Encode()
}

// =============================================================================

func toNode(doc nodeDoc) Node {
	nodes := make([]Node, len(doc.Nodes))
	for i, child := range doc.Nodes {
		nodes[i] = toNode(child)
	}

	return Node{Block: doc.Block, Nodes: nodes}
}

func toNodeDoc(n Node) nodeDoc {

	// Children always encode as a list, never as null.
	nodes := make([]nodeDoc, len(n.Nodes))
	for i, child := range n.Nodes {
		nodes[i] = toNodeDoc(child)
	}

	return nodeDoc{Block: n.Block, Nodes: nodes}
}
