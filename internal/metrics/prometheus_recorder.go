package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	stageDuration    *prom.HistogramVec
	generateDuration prom.Histogram
	stageResults     *prom.CounterVec
	itemsLoaded      prom.Counter
	pagesRendered    prom.Counter
	overwriteSkips   prom.Counter
	unresolvedRefs   prom.Counter
	linkWarnings     prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "apidocgen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.generateDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "apidocgen",
			Name:      "generate_duration_seconds",
			Help:      "Total generate run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "apidocgen",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.itemsLoaded = prom.NewCounter(prom.CounterOpts{
			Namespace: "apidocgen",
			Name:      "items_loaded_total",
			Help:      "Documentable items loaded into the store",
		})
		pr.pagesRendered = prom.NewCounter(prom.CounterOpts{
			Namespace: "apidocgen",
			Name:      "pages_rendered_total",
			Help:      "Markdown documents written",
		})
		pr.overwriteSkips = prom.NewCounter(prom.CounterOpts{
			Namespace: "apidocgen",
			Name:      "overwrite_skipped_total",
			Help:      "Overwrite documents skipped because their UID was not in the store",
		})
		pr.unresolvedRefs = prom.NewCounter(prom.CounterOpts{
			Namespace: "apidocgen",
			Name:      "unresolved_references_total",
			Help:      "Reference identifiers rendered as unlinked text",
		})
		pr.linkWarnings = prom.NewCounter(prom.CounterOpts{
			Namespace: "apidocgen",
			Name:      "link_warnings_total",
			Help:      "Internal links in rendered output pointing at unclaimed paths",
		})
		reg.MustRegister(pr.stageDuration, pr.generateDuration, pr.stageResults,
			pr.itemsLoaded, pr.pagesRendered, pr.overwriteSkips, pr.unresolvedRefs, pr.linkWarnings)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveGenerateDuration(d time.Duration) {
	if p == nil || p.generateDuration == nil {
		return
	}
	p.generateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncItemsLoaded(n int) {
	if p == nil || p.itemsLoaded == nil {
		return
	}
	p.itemsLoaded.Add(float64(n))
}

func (p *PrometheusRecorder) IncPagesRendered(n int) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) IncOverwriteSkipped() {
	if p == nil || p.overwriteSkips == nil {
		return
	}
	p.overwriteSkips.Inc()
}

func (p *PrometheusRecorder) IncUnresolvedReference() {
	if p == nil || p.unresolvedRefs == nil {
		return
	}
	p.unresolvedRefs.Inc()
}

func (p *PrometheusRecorder) IncLinkWarnings(n int) {
	if p == nil || p.linkWarnings == nil {
		return
	}
	p.linkWarnings.Add(float64(n))
}
