package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--db", filepath.Join(t.TempDir(), "results.db")))
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestListCommand(t *testing.T) {
	out := execute(t, "list")
	assert.Contains(t, out, "01-block")
	assert.Contains(t, out, "02-glider-lane")
	assert.Contains(t, out, "24x18")
}

func TestShowCommand(t *testing.T) {
	out := execute(t, "show", "02-glider-lane")
	assert.Contains(t, out, "Glider Lane")
	assert.Contains(t, out, "xx..", "missing target cells")
	assert.Contains(t, out, "@@", "detector")
	assert.Equal(t, 5, strings.Count(out, "#"))
	assert.Contains(t, out, "Hint:")
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	execute(t, "render", "01-block", "--cell", "3", "-o", path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16*3, img.Bounds().Dx())
	assert.Equal(t, 12*3, img.Bounds().Dy())
}

func TestResultsCommandEmpty(t *testing.T) {
	out := execute(t, "results", "01-block")
	assert.Contains(t, out, "No solves recorded yet.")
}

func TestUnknownLevel(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", "nope"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown level")
}
