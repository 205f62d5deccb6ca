package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arborchain/arbor/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	signInPath  string
	signOutPath string
)

func init() {
	signCmd.Flags().StringVarP(&signInPath, "in", "i", "", "Path to the unsigned transaction JSON.")
	signCmd.Flags().StringVarP(&signOutPath, "out", "o", "", "Path to write the signed transaction JSON.")
	signCmd.MarkFlagRequired("in")
	signCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(signCmd)
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign every input of a transaction with the account's key",
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			return err
		}

		data, err := os.ReadFile(signInPath)
		if err != nil {
			return err
		}

		var tx database.Tx
		if err := json.Unmarshal(data, &tx); err != nil {
			return fmt.Errorf("decoding transaction: %w", err)
		}

		signedTx, err := tx.Sign(privateKey)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(signedTx, "", "  ")
		if err != nil {
			return err
		}

		if err := os.WriteFile(signOutPath, out, 0644); err != nil {
			return err
		}

		fmt.Printf("wrote signed transaction %s: %s\n", signedTx.HashString(), signOutPath)

		return nil
	},
}
