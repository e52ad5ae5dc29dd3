// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileStatus indicates the outcome of patching one file.
type FileStatus string

const (
	// FilePatched means at least one fix changed the document.
	FilePatched FileStatus = "patched"
	// FileUnchanged means every fix was already satisfied. The file is
	// still rewritten with the serialized tree.
	FileUnchanged FileStatus = "unchanged"
	// FileFailed means the file could not be read, parsed, or written.
	FileFailed FileStatus = "failed"
)

// FixCounts records how many elements each accessibility fix changed in a
// single document. An element that already carried the target values is
// not counted.
type FixCounts struct {
	MenuButtons int `json:"menu_buttons" yaml:"menu_buttons"`
	CopyButtons int `json:"copy_buttons" yaml:"copy_buttons"`
	Headings    int `json:"headings" yaml:"headings"`
	Images      int `json:"images" yaml:"images"`
}

// Total returns the number of element changes across all fixes.
func (c FixCounts) Total() int {
	return c.MenuButtons + c.CopyButtons + c.Headings + c.Images
}

// Add returns the element-wise sum of c and o.
func (c FixCounts) Add(o FixCounts) FixCounts {
	return FixCounts{
		MenuButtons: c.MenuButtons + o.MenuButtons,
		CopyButtons: c.CopyButtons + o.CopyButtons,
		Headings:    c.Headings + o.Headings,
		Images:      c.Images + o.Images,
	}
}

// FileResult holds the outcome of patching one HTML file.
type FileResult struct {
	// Path is the file path as discovered under the root directory.
	Path string `json:"path" yaml:"path"`

	Status FileStatus `json:"status" yaml:"status"`

	Fixes FixCounts `json:"fixes" yaml:"fixes"`

	// Error is the failure message when Status is FileFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunReport summarizes one invocation over a root directory.
type RunReport struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	RootDir    string       `json:"root_dir" yaml:"root_dir"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Files      []FileResult `json:"files" yaml:"files"`
}

// Total returns the number of files processed, including failures.
func (r RunReport) Total() int {
	return len(r.Files)
}

// Patched returns the number of files that had at least one fix applied.
func (r RunReport) Patched() int {
	return r.count(FilePatched)
}

// Unchanged returns the number of files that needed no fixes.
func (r RunReport) Unchanged() int {
	return r.count(FileUnchanged)
}

// Failed returns the number of files that could not be processed.
func (r RunReport) Failed() int {
	return r.count(FileFailed)
}

// HasFailures reports whether any file failed.
func (r RunReport) HasFailures() bool {
	return r.Failed() > 0
}

// Fixes returns the fix counts summed over every file.
func (r RunReport) Fixes() FixCounts {
	var total FixCounts
	for _, f := range r.Files {
		total = total.Add(f.Fixes)
	}
	return total
}

func (r RunReport) count(s FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}
