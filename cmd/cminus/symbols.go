package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cminus/internal/diag"
	"cminus/internal/diagfmt"
	"cminus/internal/driver"
	"cminus/internal/sema"
	"cminus/internal/source"
)

func newSymbolsCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols <file.cmast>",
		Short: "Analyse one tree file and dump its symbol table",
		Long:  `Analyse one tree file and print every scope with its bindings, including the field layout of each struct. Diagnostics go to stderr.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymbols(cmd, sess, args[0])
		},
	}
	cmd.Flags().Bool("unbound", false, "also list identifier uses left unresolved")
	return cmd
}

func runSymbols(cmd *cobra.Command, sess *session, path string) error {
	showUnbound, err := cmd.Flags().GetBool("unbound")
	if err != nil {
		return fmt.Errorf("failed to get unbound flag: %w", err)
	}

	fileSet := source.NewFileSet()
	tree, _, _, err := driver.LoadTree(fileSet, path)
	if err != nil {
		return err
	}

	bag := diag.NewBag(sess.cfg.Check.MaxDiagnostics)
	res, err := sema.Analyze(cmd.Context(), tree, sema.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Validate: true,
	})
	if err != nil {
		sess.dumpTrace(cmd.ErrOrStderr())
		if res == nil {
			return err
		}
		// the partial table is still worth printing
		fmt.Fprintf(cmd.ErrOrStderr(), "internal fault: %v\n", err)
	}

	bag.Sort()
	if perr := diagfmt.Pretty(cmd.ErrOrStderr(), bag, fileSet, diagfmt.PrettyOpts{
		Color:     sess.color,
		PathMode:  sess.pathMode(),
		ShowNotes: true,
	}); perr != nil {
		return perr
	}

	out := cmd.OutOrStdout()
	if derr := res.Table.Dump(out); derr != nil {
		return derr
	}
	if showUnbound {
		unbound := tree.Unbound()
		fmt.Fprintf(out, "unbound uses: %d\n", len(unbound))
		for _, id := range unbound {
			fmt.Fprintf(out, "  %s at %s\n", tree.Name(id), tree.Get(id).Pos)
		}
	}

	if err != nil || bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}
