package merkle_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/arborchain/arbor/foundation/blockchain/merkle"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

// payload implements the merkle Hashable interface for testing.
type payload struct {
	value string
}

func (p payload) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(p.value))
	return h[:], nil
}

func (p payload) Equals(other payload) bool {
	return p.value == other.value
}

// =============================================================================

func Test_Tree(t *testing.T) {
	tt := []struct {
		name   string
		values []string
	}{
		{name: "single", values: []string{"a"}},
		{name: "even", values: []string{"a", "b", "c", "d"}},
		{name: "odd", values: []string{"a", "b", "c"}},
	}

	t.Log("Given the need to build merkle trees over transaction sets.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s set of values.", testID, tst.name)
			{
				f := func(t *testing.T) {
					var values []payload
					for _, v := range tst.values {
						values = append(values, payload{value: v})
					}

					tree, err := merkle.NewTree(values)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to build the tree: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to build the tree.", success, testID)

					if err := tree.Verify(); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to verify the tree: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to verify the tree.", success, testID)

					got := tree.Values()
					if len(got) != len(values) {
						t.Fatalf("\t%s\tTest %d:\tShould get the original values back, got %d, exp %d.", failed, testID, len(got), len(values))
					}
					for i := range got {
						if !got[i].Equals(values[i]) {
							t.Fatalf("\t%s\tTest %d:\tShould get the original values back in order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get the original values back in order.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_Proof(t *testing.T) {
	t.Log("Given the need to prove a value is in the tree.")
	{
		t.Logf("\tTest 0:\tWhen handling a set of four values.")
		{
			values := []payload{{"a"}, {"b"}, {"c"}, {"d"}}

			tree, err := merkle.NewTree(values)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to build the tree.", success)

			proof, order, err := tree.Proof(values[2])
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to produce a proof: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to produce a proof.", success)

			// Replay the proof against the data hash.
			hash, err := values[2].Hash()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to hash the value: %v", failed, err)
			}

			for i, p := range proof {
				var data []byte
				if order[i] == 0 {
					data = append(p, hash...)
				} else {
					data = append(hash, p...)
				}
				sum := sha256.Sum256(data)
				hash = sum[:]
			}

			if !bytes.Equal(hash, tree.MerkleRoot) {
				t.Fatalf("\t%s\tTest 0:\tShould replay the proof to the merkle root.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould replay the proof to the merkle root.", success)

			if _, _, err := tree.Proof(payload{"zz"}); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould fail to prove a missing value.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould fail to prove a missing value.", success)
		}
	}
}
