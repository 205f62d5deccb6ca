package commands

import (
	"fmt"

	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "bals [pubkey]",
	Short: "Show the unspent value held per public key on the longest chain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadChain()
		if err != nil {
			return err
		}

		values := c.AddressValues()

		if len(args) == 1 {
			pubKey := database.PublicKey(args[0])
			fmt.Printf("%s: %d\n", pubKey, values[pubKey])
			return nil
		}

		for pubKey, value := range values {
			fmt.Printf("%s: %d\n", pubKey, value)
		}

		return nil
	},
}
