// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the a11y-patcher CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/a11y-patcher/internal/fixer"
	"github.com/pdiddy/a11y-patcher/internal/journal"
	"github.com/pdiddy/a11y-patcher/internal/report"
	"github.com/pdiddy/a11y-patcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd patches the HTML files under a directory tree.
var rootCmd = &cobra.Command{
	Use:   "a11y-patcher [root]",
	Short: "Apply accessibility fixes to a tree of HTML files",
	Long: `a11y-patcher walks a directory tree and rewrites every .html file in place
with four accessibility fixes:

  - the #mobile-menu-button toggle gets aria-label and aria-expanded="false";
  - every .copy-button element gets an aria-label;
  - every h1 after the first in a document becomes h2;
  - every img with a missing or empty alt gets placeholder alt text.

The root directory comes from the argument, --root, the "root" config key, or
A11Y_PATCHER_ROOT, in that order, and defaults to the current directory.
A directory named like a subcommand ("history", "version") must be passed
with --root. Files are overwritten without backup.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runPatch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./a11y-patcher.yaml or ~/.config/a11y-patcher/config.yaml)")
	rootCmd.PersistentFlags().String("journal", "", "SQLite run journal to record into (disabled when empty)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-file progress to stderr")

	rootCmd.Flags().String("root", ".", "directory tree to patch")
	rootCmd.Flags().String("ext", types.DefaultExtension, "file suffix to patch (case-sensitive)")
	rootCmd.Flags().Bool("keep-going", false, "continue with remaining files after a failure")
	rootCmd.Flags().String("report", "", "write a run report to this .yaml or .json file")

	for key, flag := range map[string]string{
		"root":       "root",
		"extension":  "ext",
		"keep_going": "keep-going",
		"report":     "report",
	} {
		_ = viper.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
	for _, key := range []string{"journal", "verbose"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("a11y-patcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "a11y-patcher"))
		}
	}

	viper.SetEnvPrefix("A11Y_PATCHER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the patch configuration from viper, letting a
// positional root argument take precedence.
func loadConfig(args []string) (types.PatchConfig, error) {
	var cfg types.PatchConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if len(args) == 1 {
		cfg.RootDir = args[0]
	}
	return cfg.WithDefaults(), nil
}

// newLogger returns a text logger on w; verbose lowers the level to debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	run, runErr := fixer.Run(ctx, cfg, logger, cmd.OutOrStdout())

	// The journal and report describe whatever was processed, including
	// runs that stopped on an error.
	if cfg.JournalPath != "" {
		if err := recordRun(context.WithoutCancel(ctx), cfg.JournalPath, run); err != nil {
			logger.Warn("journal write failed", "path", cfg.JournalPath, "error", err)
		}
	}
	if cfg.ReportPath != "" {
		if err := report.Write(cfg.ReportPath, run); err != nil {
			logger.Warn("report write failed", "path", cfg.ReportPath, "error", err)
		}
	}

	return runErr
}

func recordRun(ctx context.Context, path string, run types.RunReport) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()
	return j.Record(ctx, run)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
