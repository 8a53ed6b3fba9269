package metrics

import "time"

// Stage names used as label values.
const (
	StageExtract = "extract"
	StageCopy    = "copy"
	StageRender  = "render"
	StageMerge   = "merge"
	StageSave    = "save"
)

// Recorder defines observability hooks for command runs and per-file stages.
// Implementations may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncFileOutcome(stage string, outcome string)
	ObserveRunDuration(command string, d time.Duration)
	IncRunOutcome(command string, outcome string) // outcome: success|partial|failed
	AddStoredRows(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncFileOutcome(string, string)              {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration)   {}
func (NoopRecorder) IncRunOutcome(string, string)               {}
func (NoopRecorder) AddStoredRows(int)                          {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
