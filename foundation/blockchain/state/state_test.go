package state_test

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/arborchain/arbor/foundation/blockchain/chain"
	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/genesis"
	"github.com/arborchain/arbor/foundation/blockchain/signature"
	"github.com/arborchain/arbor/foundation/blockchain/state"
	"github.com/arborchain/arbor/foundation/blockchain/storage"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const (
	pk1Hex = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	pk2Hex = "9f332e3700d8fc2446eaf6d15034cf96e0c2745e40353deef032a5dbf1dfed93"
)

// =============================================================================

func testGenesis() genesis.Genesis {
	return genesis.Genesis{
		InitialDifficulty:               1,
		Difficulty1Target:               new(big.Int).Lsh(big.NewInt(1), 240),
		TargetSecondsPerBlock:           10,
		DifficultyRecalculationInterval: 1000,
		InitialMiningReward:             100,
		MiningRewardHalvingInterval:     1000,
	}
}

func testKey(t *testing.T, hexkey string) (*ecdsa.PrivateKey, database.PublicKey) {
	t.Helper()

	pk, err := crypto.HexToECDSA(hexkey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
	}

	return pk, database.PublicKey(signature.PublicKeyString(&pk.PublicKey))
}

// seedDocument forges a genesis block and writes the chain document the
// state loads at startup.
func seedDocument(t *testing.T, gen genesis.Genesis, path string, pub database.PublicKey) database.Block {
	t.Helper()

	gblock, err := database.POW(context.Background(), gen, nil, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub}}, nil, nil)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to forge the genesis block: %v", failed, err)
	}

	doc, err := chain.New(gen, chain.Node{Block: gblock}).Encode()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to encode the document: %v", failed, err)
	}

	store, err := storage.New(path)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open the store: %v", failed, err)
	}
	if err := store.Save(doc); err != nil {
		t.Fatalf("\t%s\tShould be able to save the document: %v", failed, err)
	}

	return gblock
}

// =============================================================================

func Test_State(t *testing.T) {
	pk1, pub1 := testKey(t, pk1Hex)
	_, pub2 := testKey(t, pk2Hex)
	gen := testGenesis()

	t.Log("Given the need to run a node over a chain document.")
	{
		t.Logf("\tTest 0:\tWhen starting from a genesis document and forging.")
		{
			path := filepath.Join(t.TempDir(), "chain.json")
			gblock := seedDocument(t, gen, path, pub1)

			st, err := state.New(state.Config{StorePath: path})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to start the state: %v", failed, err)
			}
			defer st.Shutdown()
			t.Logf("\t%s\tTest 0:\tShould be able to start the state.", success)

			if len(st.QueryLongestChain()) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould start with the genesis block only.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould start with the genesis block only.", success)

			// Submit a transaction spending the genesis output.
			ref := database.TxOutRef{SourceHash: gblock.Coinbase.Hash(), FromCoinbase: true, Index: 0}
			tx, _ := database.NewTx([]database.TxOutRef{ref}, []database.TxOut{{Value: 100, SignaturePubKey: pub2}})
			signedTx, err := tx.Sign(pk1)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to sign the transaction: %v", failed, err)
			}

			if err := st.SubmitTransaction(signedTx); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the transaction: %v", failed, err)
			}
			if len(st.RetrieveMempool()) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould hold the transaction in the mempool.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould hold the transaction in the mempool.", success)

			// Forge the next block. The pending transaction rides along.
			b, err := st.Forge(context.Background(), pub2)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to forge the next block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to forge the next block.", success)

			if len(b.Txs) != 1 || b.Txs[0].HashString() != signedTx.HashString() {
				t.Fatalf("\t%s\tTest 0:\tShould carry the pending transaction in the block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould carry the pending transaction in the block.", success)

			if len(st.RetrieveMempool()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould drain the mempool after forging.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould drain the mempool after forging.", success)

			if len(st.QueryLongestChain()) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould grow the longest chain.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould grow the longest chain.", success)

			balances := st.QueryBalances("")
			if balances[pub1] != 0 || balances[pub2] != 200 {
				t.Fatalf("\t%s\tTest 0:\tShould move the full value to the second key, got %+v.", failed, balances)
			}
			t.Logf("\t%s\tTest 0:\tShould move the full value to the second key.", success)

			// The document on disk reflects the new chain. A fresh state
			// picks it up.
			st2, err := state.New(state.Config{StorePath: path})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to restart from disk: %v", failed, err)
			}
			defer st2.Shutdown()

			if len(st2.QueryLongestChain()) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould reload the grown chain from disk.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reload the grown chain from disk.", success)
		}

		t.Logf("\tTest 1:\tWhen submitting a transaction that doesn't validate.")
		{
			path := filepath.Join(t.TempDir(), "chain.json")
			gblock := seedDocument(t, gen, path, pub1)

			st, err := state.New(state.Config{StorePath: path})
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to start the state: %v", failed, err)
			}
			defer st.Shutdown()

			// pk2 doesn't own the genesis output.
			pk2, _ := testKey(t, pk2Hex)
			ref := database.TxOutRef{SourceHash: gblock.Coinbase.Hash(), FromCoinbase: true, Index: 0}
			tx, _ := database.NewTx([]database.TxOutRef{ref}, []database.TxOut{{Value: 100, SignaturePubKey: pub2}})
			signedTx, err := tx.Sign(pk2)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to sign the transaction: %v", failed, err)
			}

			if err := st.SubmitTransaction(signedTx); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the transaction.", failed)
			}
			if len(st.RetrieveMempool()) != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould keep the mempool empty.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the transaction and keep the mempool empty.", success)
		}
	}
}
