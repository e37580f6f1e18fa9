package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/ui"
)

// DecodeFunc turns raw file contents into a description.
type DecodeFunc func(r io.Reader) (ui.Node, error)

// Loader implements ports.DescriptionLoader over a directory of description
// files. IDs are slash-separated paths relative to the directory, without
// extension.
type Loader struct {
	BasePath string
	decoders map[string]DecodeFunc
}

// Option configures a Loader.
type Option func(*Loader)

// WithDecoder registers (or replaces) the decoder for a file extension,
// given with its leading dot.
func WithDecoder(ext string, fn DecodeFunc) Option {
	return func(l *Loader) {
		l.decoders[strings.ToLower(ext)] = fn
	}
}

// New creates a Loader rooted at basePath. YAML and JSON are supported out of
// the box.
func New(basePath string, opts ...Option) *Loader {
	l := &Loader{
		BasePath: basePath,
		decoders: map[string]DecodeFunc{
			".yaml": DecodeYAML,
			".yml":  DecodeYAML,
			".json": DecodeJSON,
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the first file named id plus a supported extension.
func (l *Loader) Load(ctx context.Context, id string) (ui.Node, error) {
	for _, ext := range l.extensions() {
		path := filepath.Join(l.BasePath, filepath.FromSlash(id)+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return l.ReadFile(path)
	}
	return ui.Empty, fmt.Errorf("%s: %w", id, domain.ErrNotFound)
}

// List returns the IDs of every supported file below BasePath.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]string)
	var ids []string

	err := filepath.WalkDir(l.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := l.decoders[ext]; !ok {
			return nil
		}
		rel, err := filepath.Rel(l.BasePath, path)
		if err != nil {
			return err
		}
		id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		if existing, ok := seen[id]; ok {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, rel)
		}
		seen[id] = rel
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list descriptions: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// ReadFile decodes a single file, picking the decoder by extension.
func (l *Loader) ReadFile(path string) (ui.Node, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := l.decoders[ext]
	if !ok {
		return ui.Empty, fmt.Errorf("unsupported description format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ui.Empty, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return ui.Empty, fmt.Errorf("failed to open description: %w", err)
	}
	defer f.Close()

	n, err := decode(f)
	if err != nil {
		return ui.Empty, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return n, nil
}

func (l *Loader) extensions() []string {
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DecodeYAML decodes a YAML description.
func DecodeYAML(r io.Reader) (ui.Node, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return ui.Empty, nil
		}
		return ui.Empty, fmt.Errorf("invalid yaml: %w", err)
	}
	return ui.Decode(raw)
}

// DecodeJSON decodes a JSON description. Numbers are kept as json.Number.
func DecodeJSON(r io.Reader) (ui.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ui.Empty, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ui.Empty, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return ui.Empty, fmt.Errorf("invalid json: %w", err)
	}
	return ui.Decode(raw)
}
