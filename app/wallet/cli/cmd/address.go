package cmd

import (
	"fmt"

	"github.com/arborchain/arbor/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(addressCmd)
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show the public key transaction outputs can be locked to",
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			return err
		}

		fmt.Println(signature.PublicKeyString(&privateKey.PublicKey))

		return nil
	},
}
