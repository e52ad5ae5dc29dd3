// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultExtension is the file suffix matched during discovery. The match is
// case-sensitive.
const DefaultExtension = ".html"

// PatchConfig holds the settings for one patch run over a directory tree.
type PatchConfig struct {
	// RootDir is the directory whose HTML files are patched in place.
	RootDir string `json:"root" yaml:"root" mapstructure:"root"`

	// Extension is the file suffix to match (default ".html").
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// ContinueOnError keeps processing remaining files after a failure.
	// The default aborts on the first failing file.
	ContinueOnError bool `json:"keep_going" yaml:"keep_going" mapstructure:"keep_going"`

	// JournalPath is an optional SQLite database recording each run.
	JournalPath string `json:"journal,omitempty" yaml:"journal,omitempty" mapstructure:"journal"`

	// ReportPath is an optional YAML or JSON file receiving the run report.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty" mapstructure:"report"`

	// Verbose enables per-file debug logging on stderr.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c PatchConfig) WithDefaults() PatchConfig {
	if c.RootDir == "" {
		c.RootDir = "."
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	return c
}
