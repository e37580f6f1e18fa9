package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/mdrender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mdrender version "+strings.TrimSpace(mdrender.Version)+"\n", out)
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{type: h3, children: [Hi]}"), 0o644))

	out, err := execute(t, "render", path)
	require.NoError(t, err)
	assert.Equal(t, "### Hi\n\n", out)
}

func TestRenderCommand_RequiresFile(t *testing.T) {
	_, err := execute(t, "render")
	assert.Error(t, err)
}
