package genesis_test

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/arborchain/arbor/foundation/blockchain/genesis"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_TargetReward(t *testing.T) {
	gen := genesis.Genesis{
		InitialMiningReward:         100,
		MiningRewardHalvingInterval: 10,
	}

	tt := []struct {
		name   string
		height uint64
		reward uint64
	}{
		{name: "first block", height: 1, reward: 100},
		{name: "last before halving", height: 9, reward: 100},
		{name: "first halving", height: 10, reward: 50},
		{name: "second halving", height: 20, reward: 25},
		{name: "deep halving", height: 70, reward: 0},
		{name: "past representable range", height: 1000, reward: 0},
	}

	t.Log("Given the need to schedule the mining reward.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling height %d.", testID, tst.height)
			{
				reward := gen.TargetReward(tst.height)
				if reward != tst.reward {
					t.Fatalf("\t%s\tTest %d:\tShould get reward %d, got %d.", failed, testID, tst.reward, reward)
				}
				t.Logf("\t%s\tTest %d:\tShould get reward %d.", success, testID, tst.reward)
			}
		}
	}
}

func Test_LoadSave(t *testing.T) {
	t.Log("Given the need to load and save the genesis file.")
	{
		t.Logf("\tTest 0:\tWhen handling a round trip through disk.")
		{
			gen := genesis.Genesis{
				InitialDifficulty:               16,
				Difficulty1Target:               new(big.Int).Lsh(big.NewInt(1), 240),
				TargetSecondsPerBlock:           10,
				DifficultyRecalculationInterval: 100,
				InitialMiningReward:             100,
				MiningRewardHalvingInterval:     1000,
			}

			path := filepath.Join(t.TempDir(), "genesis.json")

			if err := genesis.Save(path, gen); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to save the genesis file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to save the genesis file.", success)

			loaded, err := genesis.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the genesis file: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the genesis file.", success)

			if loaded.Difficulty1Target.Cmp(gen.Difficulty1Target) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould keep the difficulty 1 target.", failed)
			}
			loaded.Difficulty1Target = gen.Difficulty1Target
			if loaded != gen {
				t.Fatalf("\t%s\tTest 0:\tShould keep every configuration value, got %+v, exp %+v.", failed, loaded, gen)
			}
			t.Logf("\t%s\tTest 0:\tShould keep every configuration value.", success)
		}

		t.Logf("\tTest 1:\tWhen handling a file with a zero interval.")
		{
			gen := genesis.Genesis{
				Difficulty1Target:           big.NewInt(1),
				MiningRewardHalvingInterval: 10,
			}

			path := filepath.Join(t.TempDir(), "genesis.json")
			if err := genesis.Save(path, gen); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to save the genesis file: %v", failed, err)
			}

			if _, err := genesis.Load(path); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a zero recalculation interval.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a zero recalculation interval.", success)
		}
	}
}
