// Package metrics provides observability hooks for content aggregation and
// catalog construction.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	agg := aggregate.New(resolver, aggregate.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on the supplied registry.
// WriteTextfile dumps a registry in the Prometheus text format, which is how
// the CLI exposes metrics for a single run.
package metrics
