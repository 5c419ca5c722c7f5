// Package trace records what the ember front end is doing while it runs.
//
// Events are grouped into spans (begin/end pairs) and instant points. Each
// tracer carries a run id so that traces from parallel invocations written
// to the same sink can be told apart.
//
//	tr, _ := trace.New(trace.Config{Level: trace.LevelFile, Mode: trace.ModeStream})
//	ctx = trace.WithTracer(ctx, tr)
//
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "parse", 0)
//	defer sp.End("")
//
// Levels:
//
//   - off: nothing
//   - stage: command and stage boundaries (tokenize, parse)
//   - file: per-file spans as well
//   - debug: everything including per-item points
package trace
