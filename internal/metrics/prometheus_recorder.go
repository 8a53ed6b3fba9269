package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "leli"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	fileOutcomes  *prom.CounterVec
	runDuration   *prom.HistogramVec
	runOutcomes   *prom.CounterVec
	storedRows    prom.Counter
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of per-file stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		fileOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "file_outcomes_total",
			Help:      "Per-file outcomes by stage",
		}, []string{"stage", "outcome"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total command duration",
			Buckets:   prom.DefBuckets,
		}, []string{"command"}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Command outcomes by final status",
		}, []string{"command", "outcome"}),
		storedRows: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stored_rows_total",
			Help:      "Rows inserted into html_metadata",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.fileOutcomes, pr.runDuration, pr.runOutcomes, pr.storedRows)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFileOutcome(stage string, outcome string) {
	p.fileOutcomes.WithLabelValues(stage, outcome).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	p.runDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(command string, outcome string) {
	p.runOutcomes.WithLabelValues(command, outcome).Inc()
}

func (p *PrometheusRecorder) AddStoredRows(n int) {
	if n > 0 {
		p.storedRows.Add(float64(n))
	}
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
