package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mdrender"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mdrender",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mdrender version %s\n", strings.TrimSpace(mdrender.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
