// Package sema runs name analysis over a syntax tree: it builds the symbol
// table, resolves every identifier use to its declaration and reports
// declaration and scoping errors.
package sema

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cminus/internal/ast"
	"cminus/internal/diag"
	"cminus/internal/symbols"
	"cminus/internal/trace"
)

// ErrUnbalancedScopes reports a traversal that did not pop every scope it
// pushed. Like symbols.ErrEmptyTable it is an analyzer bug, not a user error.
var ErrUnbalancedScopes = errors.New("unbalanced scopes")

// Options configures one analysis run.
type Options struct {
	// Reporter receives semantic errors in the order they are found.
	// Nil discards them; they are still listed in Result.Diagnostics.
	Reporter diag.Reporter
	Hints    symbols.Hints
	// Validate runs Table.Validate after the pass; a failure is an internal fault.
	Validate bool
}

// Result is what one run leaves behind for later passes.
type Result struct {
	Table  *symbols.Table
	Global symbols.ScopeID
	// Diagnostics lists (position, code) pairs in the order encountered.
	Diagnostics []diag.Entry
	Visited     int
}

// Analyze runs a single pre-order pass over tree starting from a fresh stack
// holding one global scope. Identifier nodes are bound in place.
//
// Semantic errors never fail the pass. The returned error is reserved for
// internal faults (symbols.ErrEmptyTable, ErrUnbalancedScopes); the partial
// result is returned alongside it.
func Analyze(ctx context.Context, tree *ast.Tree, opts Options) (*Result, error) {
	if tree == nil || tree.Get(tree.Root) == nil {
		return nil, fmt.Errorf("analyze: %w", ast.ErrMalformedTree)
	}
	hints := opts.Hints
	if hints.Scopes == 0 {
		hints.Scopes = 16
	}
	if hints.Symbols == 0 {
		hints.Symbols = uint(tree.Len()/4 + 1)
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "analyze", trace.CurrentSpan(ctx).SpanID)

	table := symbols.NewTable(hints, tree.Strings)
	global := symbols.NewStack(table, symbols.ScopeGlobal)
	a := &analyzer{
		tree:     tree,
		table:    table,
		stack:    global,
		reporter: opts.Reporter,
		tracer:   tracer,
		span:     span.ID(),
	}
	a.traceNodes = tracer.Enabled() && tracer.Level().ShouldEmit(trace.ScopeNode)
	if a.reporter == nil {
		a.reporter = diag.NopReporter{}
	}

	err := a.visit(tree.Root)
	if err == nil && global.Depth() != 1 {
		err = fmt.Errorf("%w: %d scopes left after the pass", ErrUnbalancedScopes, global.Depth())
	}
	if err == nil && opts.Validate {
		if verr := table.Validate(); verr != nil {
			err = fmt.Errorf("symbol table invariant violation: %w", verr)
		}
	}

	res := &Result{
		Table:       table,
		Global:      global.Current(),
		Diagnostics: a.entries,
		Visited:     a.visited,
	}
	span.WithExtra("nodes", strconv.Itoa(a.visited)).
		WithExtra("symbols", strconv.Itoa(table.Symbols.Len())).
		WithExtra("diagnostics", strconv.Itoa(len(a.entries)))
	if err != nil {
		span.End(err.Error())
		return res, fmt.Errorf("analyze: %w", err)
	}
	span.End("")
	return res, nil
}

type analyzer struct {
	tree  *ast.Tree
	table *symbols.Table
	// stack is the stack actions work against; struct declarations swap in
	// their private field stack while their fields are visited.
	stack    *symbols.Stack
	reporter diag.Reporter
	tracer   trace.Tracer
	span     uint64
	// per-node visit events are only built at debug level
	traceNodes bool
	entries  []diag.Entry
	visited  int
}
