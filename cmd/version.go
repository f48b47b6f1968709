package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X github.com/abhisek/catprep/cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the catprep version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("catprep", version)
	},
}
