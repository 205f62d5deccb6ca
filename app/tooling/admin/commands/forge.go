package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var (
	forgeRewardKey string
	forgeTxsPath   string
)

func init() {
	forgeCmd.Flags().StringVarP(&forgeRewardKey, "reward-key", "r", "", "Public key the mining reward is paid to.")
	forgeCmd.Flags().StringVarP(&forgeTxsPath, "txs", "t", "", "Path to a JSON array of transactions to include.")
	forgeCmd.MarkFlagRequired("reward-key")
}

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Perform the proof of work for the next block on the longest chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, store, err := loadChain()
		if err != nil {
			return err
		}

		var txs []database.Tx
		if forgeTxsPath != "" {
			data, err := os.ReadFile(forgeTxsPath)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &txs); err != nil {
				return fmt.Errorf("decoding transactions: %w", err)
			}
		}

		ancestors := c.LongestChain()
		gen := c.Genesis()

		coinbase := database.CoinbaseTx{
			{Value: gen.TargetReward(uint64(len(ancestors)) + 1), SignaturePubKey: database.PublicKey(forgeRewardKey)},
		}

		b, err := database.POW(context.Background(), gen, ancestors, coinbase, txs, nil)
		if err != nil {
			return err
		}

		next, err := c.AddBlock(b, nil)
		if err != nil {
			return err
		}

		data, err := next.Encode()
		if err != nil {
			return err
		}
		if err := store.Save(data); err != nil {
			return err
		}

		fmt.Printf("forged block %s at height %d\n", b.Hash(), len(ancestors)+1)

		return nil
	},
}
