package main

import (
	"github.com/aretw0/mdrender/internal/cli"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the committed document tree as a Mermaid diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		format, _ := cmd.Flags().GetString("format")

		return cli.Tree(cmd.Context(), cli.TreeOptions{
			Path:   args[0],
			Format: format,
			Debug:  debug,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringP("format", "f", "", "Input format: yaml, json or html (default: from extension)")
}
