package database_test

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/arborchain/arbor/foundation/blockchain/genesis"
	"github.com/arborchain/arbor/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Fixed private keys so the test fixtures are stable.
const (
	pk1Hex = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	pk2Hex = "9f332e3700d8fc2446eaf6d15034cf96e0c2745e40353deef032a5dbf1dfed93"
)

// =============================================================================

// testGenesis returns a configuration whose proof of work is cheap enough
// to solve inside a test run.
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

// mineHeader searches a nonce until the block's header meets its declared
// difficulty. Used when a test needs full control over the other header
// fields.
func mineHeader(t *testing.T, gen genesis.Genesis, b *database.Block) {
	t.Helper()

	target := new(big.Int).SetUint64(b.Header.Difficulty)
	for database.HashDifficulty(gen.Difficulty1Target, b.Header).Cmp(target) < 0 {
		b.Header.Nonce++
	}
}

// nextBlock constructs and mines a block on top of the specified
// ancestors with full control of the coinbase and transactions.
func nextBlock(t *testing.T, gen genesis.Genesis, ancestors []database.Block, coinbase database.CoinbaseTx, txs []database.Tx) database.Block {
	t.Helper()

	root, err := database.TxMerkleRootHex(txs)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to compute the merkle root: %v", failed, err)
	}

	prevHash := signature.ZeroHash
	var blockTime uint64 = 1_700_000_000
	if len(ancestors) > 0 {
		parent := ancestors[len(ancestors)-1]
		prevHash = parent.Hash()
		blockTime = parent.Header.Time + 10
	}

	b := database.Block{
		Header: database.BlockHeader{
			PrevBlockHeaderHash: prevHash,
			CoinbaseTxHash:      coinbase.Hash(),
			TxMerkleRoot:        root,
			Time:                blockTime,
			Difficulty:          database.TargetDifficulty(gen, ancestors),
		},
		Coinbase: coinbase,
		Txs:      txs,
	}

	mineHeader(t, gen, &b)

	return b
}
