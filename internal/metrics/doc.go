// Package metrics provides run and per-file metrics for leli commands.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless --metrics-file is set. In that case the CLI installs a
// PrometheusRecorder and writes its registry in the node_exporter textfile
// format once the command finishes:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	w := walk.New(walk.WithRecorder(rec))
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/leli.prom")
package metrics
