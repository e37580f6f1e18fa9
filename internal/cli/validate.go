package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/mdrender/internal/validator"
)

// ValidateOptions contains the configuration for the validate command.
type ValidateOptions struct {
	Path   string
	Format string
	// Strict turns warnings into a failure.
	Strict bool
}

// Validate lints a description file and prints every issue to w.
func Validate(opts ValidateOptions, w io.Writer) error {
	desc, err := LoadDescription(opts.Path, opts.Format, os.Stdin)
	if err != nil {
		return err
	}

	report := validator.Validate(desc)
	for _, issue := range report.Issues {
		fmt.Fprintln(w, issue.String())
	}

	if err := report.Err(); err != nil {
		return err
	}
	if opts.Strict && len(report.Issues) > 0 {
		return fmt.Errorf("found %d warnings", len(report.Issues))
	}
	fmt.Fprintf(w, "%s is valid\n", opts.Path)
	return nil
}
