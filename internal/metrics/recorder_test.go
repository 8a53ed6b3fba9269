package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration(StageExtract, time.Second)
	r.IncFileOutcome(StageExtract, "extracted")
	r.ObserveRunDuration("extract", time.Second)
	r.IncRunOutcome("extract", "success")
	r.AddStoredRows(3)
}

func TestOrNoop(t *testing.T) {
	require.Equal(t, NoopRecorder{}, OrNoop(nil))

	pr := NewPrometheusRecorder(nil)
	require.Same(t, pr, OrNoop(pr))
}
