// This program performs administrative tasks against a blockchain
// document on disk.
package main

import (
	"github.com/arborchain/arbor/app/tooling/admin/commands"
)

func main() {
	commands.Execute()
}
