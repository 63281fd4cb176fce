package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "doccatalog"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	stageDuration     *prom.HistogramVec
	stageResults      *prom.CounterVec
	acquireDuration   *prom.HistogramVec
	acquireRetries    prom.Counter
	refsMaterialized  *prom.CounterVec
	catalogFiles      *prom.CounterVec
	sourceConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A fresh registry is used when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.acquireDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "source_acquire_duration_seconds",
			Help:      "Duration of repository acquisition by mode",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"})
		pr.acquireRetries = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "source_acquire_retries_total",
			Help:      "Clone and fetch retries after transient failures",
		})
		pr.refsMaterialized = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "refs_materialized_total",
			Help:      "Refs read into component version fragments",
		}, []string{"ref_type"})
		pr.catalogFiles = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_files_total",
			Help:      "Files added to the content catalog by family",
		}, []string{"family"})
		pr.sourceConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "source_concurrency",
			Help:      "Configured concurrency of source acquisition",
		})
		reg.MustRegister(pr.stageDuration, pr.stageResults, pr.acquireDuration, pr.acquireRetries,
			pr.refsMaterialized, pr.catalogFiles, pr.sourceConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveAcquireDuration(d time.Duration, mode AcquireMode) {
	if p == nil || p.acquireDuration == nil {
		return
	}
	p.acquireDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAcquireRetry() {
	if p == nil || p.acquireRetries == nil {
		return
	}
	p.acquireRetries.Inc()
}

func (p *PrometheusRecorder) IncRefsMaterialized(refType string) {
	if p == nil || p.refsMaterialized == nil {
		return
	}
	p.refsMaterialized.WithLabelValues(refType).Inc()
}

func (p *PrometheusRecorder) AddCatalogFiles(family string, n int) {
	if p == nil || p.catalogFiles == nil || n <= 0 {
		return
	}
	p.catalogFiles.WithLabelValues(family).Add(float64(n))
}

func (p *PrometheusRecorder) SetSourceConcurrency(n int) {
	if p == nil || p.sourceConcurrency == nil {
		return
	}
	p.sourceConcurrency.Set(float64(n))
}
