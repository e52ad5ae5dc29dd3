// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/a11y-patcher/internal/journal"
	"github.com/pdiddy/a11y-patcher/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded runs, or the files of one run",
	Long: `History reads the run journal (--journal or the "journal" config key).
Without arguments it lists the most recent runs, newest first. With a run ID
it lists the outcome of every file processed in that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("journal")
	if path == "" {
		return fmt.Errorf("no journal configured: pass --journal or set the journal config key")
	}

	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	asJSON, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		files, err := j.Files(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, files)
		}
		return printFiles(out, files)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := j.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(out, runs)
	}
	return printRuns(out, runs)
}

func printRuns(w io.Writer, runs []journal.RunSummary) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tROOT\tFILES\tPATCHED\tUNCHANGED\tFAILED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.RootDir,
			r.Total, r.Patched, r.Unchanged, r.Failed)
	}
	return tw.Flush()
}

func printFiles(w io.Writer, files []types.FileResult) error {
	if len(files) == 0 {
		fmt.Fprintln(w, "No files recorded for this run.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tMENU\tCOPY\tHEADINGS\tIMAGES\tPATH")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n",
			f.Status, f.Fixes.MenuButtons, f.Fixes.CopyButtons, f.Fixes.Headings, f.Fixes.Images, f.Path)
		if f.Error != "" {
			fmt.Fprintf(tw, "\t\t\t\t\t  %s\n", f.Error)
		}
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
