package main

import (
	"github.com/aretw0/mdrender/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a description for constructs that render unexpectedly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		strict, _ := cmd.Flags().GetBool("strict")

		return cli.Validate(cli.ValidateOptions{
			Path:   args[0],
			Format: format,
			Strict: strict,
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("format", "f", "", "Input format: yaml, json or html (default: from extension)")
	validateCmd.Flags().Bool("strict", false, "Fail on warnings too")
}
