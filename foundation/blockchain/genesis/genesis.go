// Package genesis maintains access to the chain configuration.
package genesis

import (
	"encoding/json"
	"errors"
	"math/big"
	"os"
)

// Genesis represents the immutable configuration that drives difficulty
// retargeting and the mining reward schedule for a chain.
type Genesis struct {
	InitialDifficulty               uint64   `json:"initialDifficulty"`               // Difficulty required until the first retarget.
	Difficulty1Target               *big.Int `json:"difficulty1Target"`               // Hash target corresponding to difficulty 1.
	TargetSecondsPerBlock           uint64   `json:"targetSecondsPerBlock"`           // Desired wall time between blocks.
	DifficultyRecalculationInterval uint64   `json:"difficultyRecalculationInterval"` // Number of blocks between retargets.
	InitialMiningReward             uint64   `json:"initialMiningReward"`             // Reward for mining the first blocks.
	MiningRewardHalvingInterval     uint64   `json:"miningRewardHalvingInterval"`     // Number of blocks between reward halvings.
}

// TargetReward returns the mining reward scheduled for a block at the
// specified height. The reward halves every MiningRewardHalvingInterval
// blocks and bottoms out at zero once the halvings exceed the representable
// range.
func (g Genesis) TargetReward(height uint64) uint64 {
	halvings := height / g.MiningRewardHalvingInterval
	if halvings >= 64 {
		return 0
	}

	return g.InitialMiningReward >> halvings
}

// Validate checks the configuration carries workable values.
func (g Genesis) Validate() error {
	if g.Difficulty1Target == nil || g.Difficulty1Target.Sign() <= 0 {
		return errors.New("difficulty 1 target must be a positive integer")
	}
	if g.DifficultyRecalculationInterval == 0 {
		return errors.New("difficulty recalculation interval must be greater than zero")
	}
	if g.MiningRewardHalvingInterval == 0 {
		return errors.New("mining reward halving interval must be greater than zero")
	}

	return nil
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Save writes the genesis information to the specified file.
func Save(path string, genesis Genesis) error {
	data, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
