package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/aretw0/mdrender/internal/logging"
	"github.com/aretw0/mdrender/pkg/adapters/file"
	"github.com/aretw0/mdrender/pkg/adapters/html"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Supported values of the --format flag.
const (
	FormatAuto = ""
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatHTML = "html"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr so Stdout only carries markdown.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// LoadDescription reads a description from path ("-" for stdin).
// An empty format picks the decoder from the file extension.
func LoadDescription(path, format string, stdin io.Reader) (ui.Node, error) {
	if format == FormatAuto {
		format = formatFromExt(path)
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return ui.Empty, fmt.Errorf("failed to open description: %w", err)
		}
		defer f.Close()
		r = f
	}

	var (
		desc ui.Node
		err  error
	)
	switch format {
	case FormatYAML:
		desc, err = file.DecodeYAML(r)
	case FormatJSON:
		desc, err = file.DecodeJSON(r)
	case FormatHTML:
		desc, err = html.Parse(r)
	default:
		return ui.Empty, fmt.Errorf("unsupported format %q (want yaml, json or html)", format)
	}
	if err != nil {
		return ui.Empty, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return desc, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatYAML
	}
}
