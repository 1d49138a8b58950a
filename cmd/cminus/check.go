package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cminus/internal/diagfmt"
	"cminus/internal/driver"
	"cminus/internal/observ"
	"cminus/internal/source"
)

func newCheckCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.cmast|directory>...",
		Short: "Run name analysis on syntax tree files",
		Long:  `Run name analysis on encoded C-minus syntax trees (*.cmast), or on every tree file below the given directories, and print the diagnostics`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, sess, args)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "show live progress (auto|on|off)")
	cmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged trees from the disk cache")
	cmd.Flags().Bool("sort", true, "order each file's diagnostics by position")
	cmd.Flags().Bool("validate", false, "check symbol table invariants after each file")
	return cmd
}

// runCheck analyses every tree file named by args and prints the
// diagnostics. Finding errors is reported as exit status 1, not as an error.
func runCheck(cmd *cobra.Command, sess *session, args []string) error {
	cfg := sess.cfg.Check
	switch cfg.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", cfg.Format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return fmt.Errorf("failed to get validate flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	idx := timer.Begin("list")
	files, err := driver.ListTreeFiles(args)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.TreeExt)
	}

	opts := driver.Options{
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           cfg.Jobs,
		Sort:           cfg.Sort,
		Validate:       validate,
	}
	if cfg.Cache {
		cache, err := driver.OpenDiskCache("cminus")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	baseDir := ""
	if sess.manifest != nil {
		baseDir = sess.manifest.Root
	}
	fileSet := source.NewFileSetWithBase(baseDir)

	out := cmd.OutOrStdout()
	idx = timer.Begin("check")
	var (
		results []driver.FileResult
		stats   driver.Stats
	)
	if shouldUseTUI(mode, sess, out) {
		results, stats, err = runCheckWithUI(cmd.Context(), out, fileSet, files, opts)
	} else {
		results, stats, err = driver.CheckFiles(cmd.Context(), fileSet, files, opts)
	}
	timer.End(idx, "")
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	idx = timer.Begin("render")
	err = renderResults(out, sess, fileSet, results, withNotes)
	timer.End(idx, "")
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	for i := range results {
		if results[i].Err != nil {
			fmt.Fprintf(errOut, "%s: internal fault: %v\n", results[i].Path, results[i].Err)
			sess.dumpTrace(errOut)
			break
		}
	}
	if sess.timings {
		writeTimings(errOut, timer, results)
	}
	if !sess.quiet && cfg.Format != "json" {
		fmt.Fprintf(errOut, "checked %d file(s): %d with errors", stats.Files, stats.Failed)
		if stats.CacheHits > 0 {
			fmt.Fprintf(errOut, ", %d from cache", stats.CacheHits)
		}
		fmt.Fprintln(errOut)
	}

	if stats.Failed > 0 {
		return exitError{code: 1}
	}
	return nil
}

func renderResults(out io.Writer, sess *session, fileSet *source.FileSet, results []driver.FileResult, withNotes bool) error {
	cfg := sess.cfg.Check
	switch cfg.Format {
	case "json":
		report := diagfmt.Report{Files: make([]diagfmt.DiagnosticsOutput, 0, len(results))}
		for i := range results {
			r := &results[i]
			entry := diagfmt.BuildDiagnosticsOutput(r.Bag, fileSet, diagfmt.JSONOpts{
				PathMode:     sess.pathMode(),
				IncludeNotes: withNotes,
			})
			entry.File = r.Path
			if r.Err != nil {
				entry.Error = r.Err.Error()
			}
			if r.Failed() {
				report.Errors++
			}
			report.Files = append(report.Files, entry)
		}
		return diagfmt.WriteJSON(out, report)
	case "short":
		for i := range results {
			if err := diagfmt.Short(out, results[i].Bag, fileSet, withNotes); err != nil {
				return err
			}
		}
	default:
		opts := diagfmt.PrettyOpts{
			Color:     sess.color,
			Context:   true,
			PathMode:  sess.pathMode(),
			ShowNotes: withNotes,
		}
		for i := range results {
			if err := diagfmt.Pretty(out, results[i].Bag, fileSet, opts); err != nil {
				return err
			}
			if n := results[i].Bag.Dropped(); n > 0 {
				fmt.Fprintf(out, "%s: %d more diagnostic(s) not shown\n", results[i].Path, n)
			}
		}
	}
	return nil
}

// writeTimings prints the run's phases followed by the per-file phases
// summed over all files.
func writeTimings(w io.Writer, timer *observ.Timer, results []driver.FileResult) {
	fmt.Fprint(w, timer.Summary())
	var files observ.Report
	for i := range results {
		files = files.Add(results[i].Timing)
	}
	if len(files.Phases) > 0 {
		fmt.Fprintf(w, "per-file phases over %d file(s):\n", len(results))
		fmt.Fprint(w, files.Summary())
	}
}
