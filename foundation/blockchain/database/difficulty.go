package database

import (
	"fmt"
	"math/big"

	"github.com/arborchain/arbor/foundation/blockchain/genesis"
	"github.com/arborchain/arbor/foundation/blockchain/signature"
)

// TargetDifficulty returns the difficulty required for the block that
// would follow the specified prior blocks. Retargeting happens at each
// recalculation interval boundary based on the wall time the interval
// actually took; between boundaries the previous block's difficulty
// carries forward.
func TargetDifficulty(gen genesis.Genesis, priorBlocks []Block) uint64 {
	n := uint64(len(priorBlocks))
	if n == 0 {
		return gen.InitialDifficulty
	}

	previous := priorBlocks[n-1].Header.Difficulty

	k := gen.DifficultyRecalculationInterval
	if n%k != 0 {
		return previous
	}

	window := priorBlocks[n-k:]
	elapsed := window[len(window)-1].Header.Time - window[0].Header.Time
	if elapsed < 1 {
		elapsed = 1
	}

	expected := k * gen.TargetSecondsPerBlock

	difficulty := previous * expected / elapsed
	if difficulty < 1 {
		difficulty = 1
	}

	return difficulty
}

// HashDifficulty returns the difficulty the specified header's hash
// actually achieves: the difficulty 1 target divided by the hash
// interpreted as an unbounded integer. The header meets a difficulty D
// when the result is >= D.
func HashDifficulty(diff1 *big.Int, header BlockHeader) *big.Int {
	hashValue, err := signature.HashToBig(header.Hash())
	if err != nil {
		panic(fmt.Sprintf("database: header hash is not decodable: %s", err))
	}
	if hashValue.Sign() == 0 {
		panic("database: header hash is zero")
	}

	return new(big.Int).Div(diff1, hashValue)
}
