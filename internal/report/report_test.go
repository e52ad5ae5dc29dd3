// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/a11y-patcher/pkg/types"
)

func sampleRun() types.RunReport {
	started := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	return types.RunReport{
		RunID:      "8d1f0c7e-run",
		RootDir:    "public",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Files: []types.FileResult{
			{Path: "public/index.html", Status: types.FilePatched, Fixes: types.FixCounts{CopyButtons: 2, Headings: 1}},
			{Path: "public/x.html", Status: types.FileFailed, Error: "read public/x.html: permission denied"},
		},
	}
}

func TestWrite_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	require.NoError(t, Write(path, sampleRun()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got document
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "8d1f0c7e-run", got.RunID)
	assert.Equal(t, "2026-05-04T09:30:00Z", got.StartedAt)
	assert.Equal(t, summary{
		Total:   2,
		Patched: 1,
		Failed:  1,
		Fixes:   types.FixCounts{CopyButtons: 2, Headings: 1},
	}, got.Summary)
	require.Len(t, got.Files, 2)
	assert.Equal(t, "read public/x.html: permission denied", got.Files[1].Error)
	assert.Contains(t, string(data), "copy_buttons: 2")
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, Write(path, sampleRun()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "public", got["root_dir"])
	files, ok := got["files"].([]any)
	require.True(t, ok)
	assert.Len(t, files, 2)
}

func TestWrite_EmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Write(path, types.RunReport{RunID: "r"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"files": []`)
}
