package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rfd-radar version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("rfd-radar", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
