// Package commands contains the admin command line tooling.
package commands

import (
	"fmt"
	"os"

	"github.com/arborchain/arbor/foundation/blockchain/chain"
	"github.com/arborchain/arbor/foundation/blockchain/storage"
	"github.com/spf13/cobra"
)

var chainPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&chainPath, "chain", "c", "zblock/chain.json", "Path to the blockchain document.")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(utxoCmd)
	rootCmd.AddCommand(forgeCmd)
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative tooling for a blockchain document",
}

// Execute runs the admin tooling.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadChain reads the blockchain document from disk and runs it through
// the validation gate.
func loadChain() (chain.Chain, *storage.Store, error) {
	store, err := storage.New(chainPath)
	if err != nil {
		return chain.Chain{}, nil, err
	}

	data, err := store.Load()
	if err != nil {
		return chain.Chain{}, nil, err
	}

	unverified, err := chain.Decode(data)
	if err != nil {
		return chain.Chain{}, nil, err
	}

	verified, err := chain.Verify(unverified, nil)
	if err != nil {
		return chain.Chain{}, nil, fmt.Errorf("verifying blockchain document: %w", err)
	}

	return verified, store, nil
}
