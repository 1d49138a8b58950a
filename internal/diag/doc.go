// Package diag defines the diagnostic model shared by the analysis passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable ID such as SEM3001
//     (codes.go). Semantic codes live in the 3000 range, I/O in 4000,
//     internal faults in 9000.
//   - Message – short human text; for semantic codes it is the code title.
//   - Primary – the source.Pos the scanner attached to the offending name.
//   - Notes – optional secondary positions, e.g. an earlier declaration.
//
// # Emitting diagnostics
//
// Passes report through a Reporter so that storage stays decoupled from
// emission. ReportError returns a ReportBuilder that can carry notes before
// Emit. BagReporter stores into a Bag, which keeps emission order, enforces
// a limit and offers a stable positional sort.
//
// Package diag does no formatting beyond the single-line golden form; the
// pretty, short and JSON renderers live in internal/diagfmt.
package diag
