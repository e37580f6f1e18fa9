package main

import (
	"os"

	"github.com/aretw0/mdrender/internal/cli"
	"github.com/aretw0/mdrender/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a description to Markdown",
	Long: `Renders a description file to Markdown on stdout.
Use "-" to read the description from stdin.

The format is taken from the file extension unless --format is given:
- .yaml/.yml: YAML description
- .json: JSON description
- .html/.htm: HTML document, imported from its main content`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		preview, _ := cmd.Flags().GetBool("preview")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("cache-ttl")

		// Styled output only makes sense on a terminal.
		if preview && !tui.IsTerminal(os.Stdout) {
			preview = false
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Render(ctx, cli.RenderOptions{
			Path:    args[0],
			Format:  format,
			Output:  output,
			Preview: preview,
			Width:   tui.Width(os.Stdout),
			Debug:   debug,
			Cache:   cli.CacheOptions{RedisAddr: redisAddr, TTL: ttl},
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "", "Input format: yaml, json or html (default: from extension)")
	renderCmd.Flags().StringP("output", "o", "", "Write the markdown to this file instead of stdout")
	renderCmd.Flags().BoolP("preview", "p", false, "Style the output for the terminal")
	renderCmd.Flags().String("redis", "", "Redis address for the render cache (e.g. localhost:6379)")
	renderCmd.Flags().Duration("cache-ttl", 0, "Expire cached renders after this duration")
}
