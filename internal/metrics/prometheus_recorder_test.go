package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration(StageRender, 150*time.Millisecond)
	pr.IncFileOutcome(StageExtract, "extracted")
	pr.IncFileOutcome(StageExtract, "extracted")
	pr.IncFileOutcome(StageExtract, "failed")
	pr.ObserveRunDuration("translate", 500*time.Millisecond)
	pr.IncRunOutcome("translate", "success")
	pr.AddStoredRows(4)
	pr.AddStoredRows(0)

	require.InDelta(t, 2, testutil.ToFloat64(pr.fileOutcomes.WithLabelValues(StageExtract, "extracted")), 0)
	require.InDelta(t, 4, testutil.ToFloat64(pr.storedRows), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 5)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome("save", "success")

	path := filepath.Join(t.TempDir(), "leli.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `leli_run_outcomes_total{command="save",outcome="success"} 1`)
}
