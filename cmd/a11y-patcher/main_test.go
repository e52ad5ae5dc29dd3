// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/a11y-patcher/internal/fixer"
	"github.com/pdiddy/a11y-patcher/internal/journal"
	"github.com/pdiddy/a11y-patcher/pkg/types"
)

func TestLoadConfig_PositionalRoot(t *testing.T) {
	cfg, err := loadConfig([]string{"site"})
	require.NoError(t, err)
	assert.Equal(t, "site", cfg.RootDir)
	assert.Equal(t, types.DefaultExtension, cfg.Extension)
	assert.False(t, cfg.ContinueOnError)
}

func TestRootCommand(t *testing.T) {
	root := t.TempDir()
	page := filepath.Join(root, "index.html")
	require.NoError(t, os.WriteFile(page, []byte(`<h1>A</h1><h1>B</h1><img src="a.png">`), 0o644))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{root})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, fixer.CompletionMessage+"\n", stdout.String())

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, `<h1>A</h1><h2>B</h2><img src="a.png" alt="Descriptive text here"/>`, string(data))
}

func TestPrintRuns(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, printRuns(&b, nil))
	assert.Equal(t, "No runs recorded.\n", b.String())

	b.Reset()
	runs := []journal.RunSummary{{
		ID:        "run-1",
		RootDir:   "site",
		StartedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		Total:     3,
		Patched:   2,
		Unchanged: 1,
	}}
	require.NoError(t, printRuns(&b, runs))
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "RUN"))
	assert.Equal(t, []string{"run-1"}, strings.Fields(lines[1])[:1])
	assert.Contains(t, lines[1], "site")
}

func TestPrintFiles(t *testing.T) {
	var b bytes.Buffer
	files := []types.FileResult{
		{Path: "site/a.html", Status: types.FilePatched, Fixes: types.FixCounts{Images: 2}},
		{Path: "site/b.html", Status: types.FileFailed, Error: "read site/b.html: permission denied"},
	}
	require.NoError(t, printFiles(&b, files))
	out := b.String()
	assert.Contains(t, out, "site/a.html")
	assert.Contains(t, out, "permission denied")
}

func TestRootCommand_RootFlagForSubcommandName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir("history", 0o755))
	page := filepath.Join("history", "a.html")
	require.NoError(t, os.WriteFile(page, []byte(`<img src="a.png">`), 0o644))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"--root", "history"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		_ = rootCmd.Flags().Set("root", ".")
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, fixer.CompletionMessage+"\n", stdout.String())
	assert.Contains(t, rootCmd.Long, "--root")

	data, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, `<img src="a.png" alt="Descriptive text here"/>`, string(data))
}
