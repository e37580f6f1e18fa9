package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/mdrender/internal/presentation/tui"
	httpAdapter "github.com/aretw0/mdrender/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Addr          string
	Debug         bool
	Quiet         bool
	RenderTimeout time.Duration
	Cache         CacheOptions
}

// Serve runs the HTTP render API until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions, w io.Writer) error {
	logger := createLogger(opts.Debug)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	renderer, cleanup, err := createRenderer(ctx, logger, opts.Debug, opts.Cache, reg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr: opts.Addr,
		Handler: httpAdapter.NewHandler(renderer,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithRenderTimeout(opts.RenderTimeout),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		if !opts.Quiet {
			tui.PrintBanner(w)
			tui.Status(w, "listening", srv.Addr)
		}
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown requested")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		if !opts.Quiet {
			tui.Status(w, "stopped", "mdrender server stopped gracefully")
		}
		return nil
	}
}
