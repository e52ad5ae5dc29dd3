// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fixer runs the accessibility patch over every HTML file under a
// root directory. Files are processed one at a time: read, parse, patch,
// serialize, and overwrite in place.
package fixer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/a11y-patcher/internal/discover"
	"github.com/pdiddy/a11y-patcher/internal/document"
	"github.com/pdiddy/a11y-patcher/internal/patch"
	"github.com/pdiddy/a11y-patcher/pkg/types"
)

// CompletionMessage is printed once after the traversal finishes.
const CompletionMessage = "Accessibility fixes applied to all HTML files!"

// FixFile patches the HTML file at path and overwrites it with the result.
// The file is rewritten even when no fix applied. On failure the returned
// result has status FileFailed; read, decode, and write failures carry a
// *document.IOError or *document.ParseError.
func FixFile(path string) (types.FileResult, error) {
	result := types.FileResult{Path: path}

	doc, err := document.Load(path)
	if err != nil {
		return failed(result, err)
	}

	result.Fixes = patch.Patch(doc)

	out, err := document.Render(doc)
	if err != nil {
		return failed(result, fmt.Errorf("%s: %w", path, err))
	}
	if err := document.Save(path, out); err != nil {
		return failed(result, err)
	}

	result.Status = types.FileUnchanged
	if result.Fixes.Total() > 0 {
		result.Status = types.FilePatched
	}
	return result, nil
}

func failed(result types.FileResult, err error) (types.FileResult, error) {
	result.Status = types.FileFailed
	result.Error = err.Error()
	return result, err
}

// Run discovers files under cfg.RootDir and patches each in turn. Per-file
// progress is logged at debug level; the only output written to w is
// CompletionMessage once the traversal finishes.
//
// By default the first failing file aborts the run and its error is
// returned; files already processed stay overwritten. With
// cfg.ContinueOnError the failure is logged and recorded, the remaining
// files are processed, and an aggregate error is returned at the end.
// The context is checked between files. The returned report is populated
// in every case.
func Run(ctx context.Context, cfg types.PatchConfig, logger *slog.Logger, w io.Writer) (types.RunReport, error) {
	cfg = cfg.WithDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	report := types.RunReport{
		RunID:     uuid.NewString(),
		RootDir:   cfg.RootDir,
		StartedAt: time.Now().UTC(),
	}
	finish := func() { report.FinishedAt = time.Now().UTC() }

	paths, err := discover.Find(cfg.RootDir, cfg.Extension)
	if err != nil {
		finish()
		return report, err
	}
	logger.Debug("discovered files", "root", cfg.RootDir, "extension", cfg.Extension, "count", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			finish()
			return report, err
		}

		result, err := FixFile(path)
		report.Files = append(report.Files, result)
		if err != nil {
			if !cfg.ContinueOnError {
				finish()
				return report, err
			}
			logger.Error("patching failed", "path", path, "error", err)
			continue
		}

		logger.Debug("patched",
			"path", path,
			"status", result.Status,
			"menu_buttons", result.Fixes.MenuButtons,
			"copy_buttons", result.Fixes.CopyButtons,
			"headings", result.Fixes.Headings,
			"images", result.Fixes.Images,
		)
	}
	finish()

	fixes := report.Fixes()
	logger.Debug("run complete",
		"run_id", report.RunID,
		"files", report.Total(),
		"patched", report.Patched(),
		"unchanged", report.Unchanged(),
		"failed", report.Failed(),
		"elements_fixed", fixes.Total(),
	)
	fmt.Fprintln(w, CompletionMessage)

	if report.HasFailures() {
		return report, fmt.Errorf("%d file(s) failed", report.Failed())
	}
	return report, nil
}
