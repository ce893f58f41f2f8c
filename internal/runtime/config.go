package runtime

// Scheduler names the two scheduling strategies `rc check`'s
// --scheduler flag accepts. Neither is implemented: spec.md scopes the
// actual runtime/scheduler out, so RunConfig exists only to give the CLI
// a place to park the flag until a future runtime reads it.
type Scheduler string

const (
	SchedulerInstance    Scheduler = "instance"
	SchedulerPartitioned Scheduler = "partitioned"
)

// RunConfig collects the execution-tuning flags `rc check` accepts but
// the compile-time core never consults: thread count, RNG seed, and
// profiling. A real runtime, when one exists, reads this struct the way
// it would read parsed flags from any other frontend.
type RunConfig struct {
	Scheduler  Scheduler
	Threads    int
	Seed       int64
	Profile    bool
	ProfileK   int
	ProfileOut string
}
