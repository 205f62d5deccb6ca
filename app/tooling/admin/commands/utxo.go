package commands

import (
	"fmt"

	"github.com/arborchain/arbor/foundation/blockchain/chain"
	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var utxoCmd = &cobra.Command{
	Use:   "utxo [pubkey]",
	Short: "Show the unspent outputs on the longest chain grouped by public key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadChain()
		if err != nil {
			return err
		}

		groups := c.UnspentOutputs()

		if len(args) == 1 {
			pubKey := database.PublicKey(args[0])
			printGroup(pubKey, groups[pubKey])
			return nil
		}

		for pubKey, outputs := range groups {
			printGroup(pubKey, outputs)
		}

		return nil
	},
}

func printGroup(pubKey database.PublicKey, outputs []chain.OwnedOutput) {
	fmt.Printf("%s:\n", pubKey)
	for _, output := range outputs {
		source := "tx"
		if output.Ref.FromCoinbase {
			source = "coinbase"
		}
		fmt.Printf("  %s[%s:%d] value[%d]\n", source, output.Ref.SourceHash, output.Ref.Index, output.Out.Value)
	}
}
