// This program provides wallet support for generating keys and signing
// transactions.
package main

import "github.com/arborchain/arbor/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
