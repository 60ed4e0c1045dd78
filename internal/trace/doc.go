// Package trace records what the linter is doing, for diagnosing slow or
// surprising runs.
//
// Enable it from the command line:
//
//	codex check --trace=- --trace-level=detail src/*.c
//
// Levels:
//
//   - LevelOff: nothing
//   - LevelError: nothing unless a run fails
//   - LevelPhase: the run and its phases
//   - LevelDetail: one span per file
//   - LevelDebug: everything, including per-line events
//
// The tracer travels through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "lint", parentID)
//	defer span.End("")
package trace
