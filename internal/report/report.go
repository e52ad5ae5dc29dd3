// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report exports a run report to disk as YAML or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/a11y-patcher/pkg/types"
)

// document is the on-disk shape of a report: the run plus its totals.
type document struct {
	RunID      string             `json:"run_id" yaml:"run_id"`
	RootDir    string             `json:"root_dir" yaml:"root_dir"`
	StartedAt  string             `json:"started_at" yaml:"started_at"`
	FinishedAt string             `json:"finished_at" yaml:"finished_at"`
	Summary    summary            `json:"summary" yaml:"summary"`
	Files      []types.FileResult `json:"files" yaml:"files"`
}

type summary struct {
	Total     int             `json:"total" yaml:"total"`
	Patched   int             `json:"patched" yaml:"patched"`
	Unchanged int             `json:"unchanged" yaml:"unchanged"`
	Failed    int             `json:"failed" yaml:"failed"`
	Fixes     types.FixCounts `json:"fixes" yaml:"fixes"`
}

// Write serializes r to path. A ".json" extension selects indented JSON;
// anything else is written as YAML.
func Write(path string, r types.RunReport) error {
	doc := document{
		RunID:      r.RunID,
		RootDir:    r.RootDir,
		StartedAt:  r.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		FinishedAt: r.FinishedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Summary: summary{
			Total:     r.Total(),
			Patched:   r.Patched(),
			Unchanged: r.Unchanged(),
			Failed:    r.Failed(),
			Fixes:     r.Fixes(),
		},
		Files: r.Files,
	}
	if doc.Files == nil {
		doc.Files = []types.FileResult{}
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	} else {
		data, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
