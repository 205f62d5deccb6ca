package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arborchain/arbor/foundation/blockchain/database"
)

func Test_ValidateBlock(t *testing.T) {
	pk1, pub1 := testKey(t, pk1Hex)
	pk2, pub2 := testKey(t, pk2Hex)

	gen := testGenesis()

	gblock := nextBlock(t, gen, nil, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub1}}, nil)
	ancestors := []database.Block{gblock}

	t.Log("Given the need to validate blocks against their ancestor chain.")
	{
		t.Logf("\tTest 0:\tWhen handling a valid next block.")
		{
			b := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, nil)

			if err := b.ValidateBlock(gen, ancestors, nil); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to validate the block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to validate the block.", success)
		}

		t.Logf("\tTest 1:\tWhen handling a block with the wrong declared difficulty.")
		{
			b := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, nil)
			b.Header.Difficulty = gen.InitialDifficulty + 5
			mineHeader(t, gen, &b)

			if err := b.ValidateBlock(gen, ancestors, nil); !errors.Is(err, database.ErrInvalidDifficultyReference) {
				t.Fatalf("\t%s\tTest 1:\tShould reject with ErrInvalidDifficultyReference, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject with ErrInvalidDifficultyReference.", success)
		}

		t.Logf("\tTest 2:\tWhen handling a block whose coinbase value is off.")
		{
			b := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 999, SignaturePubKey: pub2}}, nil)

			if err := b.ValidateBlock(gen, ancestors, nil); !errors.Is(err, database.ErrInvalidCoinbaseTxValue) {
				t.Fatalf("\t%s\tTest 2:\tShould reject with ErrInvalidCoinbaseTxValue, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould reject with ErrInvalidCoinbaseTxValue.", success)
		}

		t.Logf("\tTest 3:\tWhen handling a block whose timestamp is not after the parent's.")
		{
			b := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, nil)
			b.Header.Time = gblock.Header.Time
			mineHeader(t, gen, &b)

			if err := b.ValidateBlock(gen, ancestors, nil); !errors.Is(err, database.ErrTimestampTooOld) {
				t.Fatalf("\t%s\tTest 3:\tShould reject with ErrTimestampTooOld, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould reject with ErrTimestampTooOld.", success)
		}

		t.Logf("\tTest 4:\tWhen handling a block whose header lies about the coinbase.")
		{
			b := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, nil)
			b.Coinbase = database.CoinbaseTx{{Value: 100, SignaturePubKey: pub1}}

			if err := b.ValidateBlock(gen, ancestors, nil); !errors.Is(err, database.ErrInvalidCoinbaseTxHash) {
				t.Fatalf("\t%s\tTest 4:\tShould reject with ErrInvalidCoinbaseTxHash, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 4:\tShould reject with ErrInvalidCoinbaseTxHash.", success)
		}

		t.Logf("\tTest 5:\tWhen handling a block whose header lies about the transactions.")
		{
			ref := database.TxOutRef{SourceHash: gblock.Coinbase.Hash(), FromCoinbase: true, Index: 0}
			tx, _ := database.NewTx([]database.TxOutRef{ref}, []database.TxOut{{Value: 100, SignaturePubKey: pub2}})
			signedTx, err := tx.Sign(pk1)
			if err != nil {
				t.Fatalf("\t%s\tTest 5:\tShould be able to sign the transaction: %v", failed, err)
			}

			b := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, nil)
			b.Txs = []database.Tx{signedTx}

			if err := b.ValidateBlock(gen, ancestors, nil); !errors.Is(err, database.ErrInvalidTxMerkleRoot) {
				t.Fatalf("\t%s\tTest 5:\tShould reject with ErrInvalidTxMerkleRoot, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 5:\tShould reject with ErrInvalidTxMerkleRoot.", success)
		}

		t.Logf("\tTest 6:\tWhen handling transactions that chain within the block.")
		{
			// tx1 spends the genesis output for pub2, tx2 spends tx1's
			// output straight back. Order matters.
			ref := database.TxOutRef{SourceHash: gblock.Coinbase.Hash(), FromCoinbase: true, Index: 0}
			tx1, _ := database.NewTx([]database.TxOutRef{ref}, []database.TxOut{{Value: 80, SignaturePubKey: pub2}})
			signedTx1, err := tx1.Sign(pk1)
			if err != nil {
				t.Fatalf("\t%s\tTest 6:\tShould be able to sign the first transaction: %v", failed, err)
			}

			ref2 := database.TxOutRef{SourceHash: signedTx1.HashString(), FromCoinbase: false, Index: 0}
			tx2, _ := database.NewTx([]database.TxOutRef{ref2}, []database.TxOut{{Value: 80, SignaturePubKey: pub1}})
			signedTx2, err := tx2.Sign(pk2)
			if err != nil {
				t.Fatalf("\t%s\tTest 6:\tShould be able to sign the second transaction: %v", failed, err)
			}

			good := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, []database.Tx{signedTx1, signedTx2})
			if err := good.ValidateBlock(gen, ancestors, nil); err != nil {
				t.Fatalf("\t%s\tTest 6:\tShould accept producer before spender: %v", failed, err)
			}
			t.Logf("\t%s\tTest 6:\tShould accept producer before spender.", success)

			bad := nextBlock(t, gen, ancestors, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub2}}, []database.Tx{signedTx2, signedTx1})
			if err := bad.ValidateBlock(gen, ancestors, nil); !errors.Is(err, database.ErrTxOutRefNotFound) {
				t.Fatalf("\t%s\tTest 6:\tShould reject spender before producer, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 6:\tShould reject spender before producer.", success)
		}
	}
}

func Test_POW(t *testing.T) {
	_, pub1 := testKey(t, pk1Hex)

	gen := testGenesis()

	t.Log("Given the need to forge blocks that validate.")
	{
		t.Logf("\tTest 0:\tWhen forging a genesis block and its successor.")
		{
			gblock, err := database.POW(context.Background(), gen, nil, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub1}}, nil, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to forge the genesis block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to forge the genesis block.", success)

			if err := gblock.ValidateBlock(gen, nil, nil); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to validate the forged genesis: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to validate the forged genesis.", success)

			b, err := database.POW(context.Background(), gen, []database.Block{gblock}, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub1}}, nil, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to forge the next block: %v", failed, err)
			}

			if b.Header.PrevBlockHeaderHash != gblock.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould reference the parent header.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reference the parent header.", success)

			if err := b.ValidateBlock(gen, []database.Block{gblock}, nil); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to validate the forged block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to validate the forged block.", success)
		}

		t.Logf("\tTest 1:\tWhen cancelling the work.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := database.POW(ctx, gen, nil, database.CoinbaseTx{{Value: 100, SignaturePubKey: pub1}}, nil, nil); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould stop when the context is cancelled.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould stop when the context is cancelled.", success)
		}
	}
}
