package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// AcquireMode describes how a repository handle was obtained.
type AcquireMode string

const (
	AcquireOpened  AcquireMode = "opened"  // local repository opened in place
	AcquireCached  AcquireMode = "cached"  // existing cache mirror reused
	AcquireFetched AcquireMode = "fetched" // cache mirror updated from remote
	AcquireCloned  AcquireMode = "cloned"  // new cache mirror created
	AcquireFailed  AcquireMode = "failed"
)

// Recorder defines observability hooks for aggregation and catalog metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveAcquireDuration(d time.Duration, mode AcquireMode)
	IncAcquireRetry()
	IncRefsMaterialized(refType string)
	AddCatalogFiles(family string, n int)
	SetSourceConcurrency(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)        {}
func (NoopRecorder) IncStageResult(string, ResultLabel)                {}
func (NoopRecorder) ObserveAcquireDuration(time.Duration, AcquireMode) {}
func (NoopRecorder) IncAcquireRetry()                                  {}
func (NoopRecorder) IncRefsMaterialized(string)                        {}
func (NoopRecorder) AddCatalogFiles(string, int)                       {}
func (NoopRecorder) SetSourceConcurrency(int)                          {}

// Or returns r, or NoopRecorder when r is nil.
func Or(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

// Timer returns a function that records the elapsed time for stage and its result.
func Timer(r Recorder, stage string) func(err error) {
	r = Or(r)
	start := time.Now()
	return func(err error) {
		r.ObserveStageDuration(stage, time.Since(start))
		if err != nil {
			r.IncStageResult(stage, ResultFailed)
			return
		}
		r.IncStageResult(stage, ResultSuccess)
	}
}
