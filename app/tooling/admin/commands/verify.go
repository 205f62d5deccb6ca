package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the blockchain document through the validation gate",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, err := loadChain()
		if err != nil {
			return err
		}

		paths := c.Flatten()
		longest := c.LongestChain()

		fmt.Printf("document verified: %s\n", chainPath)
		fmt.Printf("forks:   %d\n", len(paths))
		fmt.Printf("height:  %d\n", len(longest))
		fmt.Printf("tip:     %s\n", longest[len(longest)-1].Hash())

		return nil
	},
}
