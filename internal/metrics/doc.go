// Package metrics records build metrics behind a small Recorder interface.
//
// Components receive a Recorder and default to NoopRecorder, so metrics need
// no nil checks at call sites. PrometheusRecorder backs the interface with
// client_golang collectors; its registry can be written to a node_exporter
// textfile after a one-shot build or served over HTTP by the preview server.
package metrics
