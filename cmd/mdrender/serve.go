package main

import (
	"github.com/aretw0/mdrender/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP render server",
	Long: `Starts mdrender as an HTTP server.

Endpoints:
- POST /render: {"description": ...} to markdown
- GET /healthz
- GET /info
- GET /metrics: Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("cache-ttl")
		timeout, _ := cmd.Flags().GetDuration("render-timeout")
		quiet, _ := cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Addr:          addr,
			Debug:         debug,
			Quiet:         quiet,
			RenderTimeout: timeout,
			Cache: cli.CacheOptions{
				RedisAddr: redisAddr,
				TTL:       ttl,
				Memory:    true,
			},
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the render cache (default: in-memory)")
	serveCmd.Flags().Duration("cache-ttl", 0, "Expire cached renders after this duration")
	serveCmd.Flags().Duration("render-timeout", 0, "Bound each render request (0 disables)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
