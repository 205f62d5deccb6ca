package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "Show every root-to-leaf path in the block tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadChain()
		if err != nil {
			return err
		}

		for i, path := range c.Flatten() {
			fmt.Printf("chain %d: height %d\n", i, len(path))
			for _, b := range path {
				fmt.Printf("  %s  time[%d] difficulty[%d] txs[%d]\n", b.Hash(), b.Header.Time, b.Header.Difficulty, len(b.Txs))
			}
		}

		return nil
	},
}
