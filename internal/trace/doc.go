// Package trace is the logging layer of cminus.
//
// Events are leveled spans and points written as text or NDJSON, or kept in a
// ring buffer that is dumped when an analysis fails internally.
//
// # Usage
//
//	cminus check --trace=- --trace-level=detail prog.cmast
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring buffer only, dumped on internal faults
//   - LevelPhase: driver run and per-file analysis spans
//   - LevelDetail: lexical scope push/pop and diagnostics
//   - LevelDebug: everything including per-node visits
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeFile, "analyze", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace
