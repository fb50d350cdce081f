package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// Recorder defines observability hooks for generate-pipeline metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe for nil receivers when using the NoopRecorder (allowing
// optional injection).
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveGenerateDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncItemsLoaded(n int)
	IncPagesRendered(n int)
	IncOverwriteSkipped()
	IncUnresolvedReference()
	IncLinkWarnings(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveGenerateDuration(time.Duration)      {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncItemsLoaded(int)                         {}
func (NoopRecorder) IncPagesRendered(int)                       {}
func (NoopRecorder) IncOverwriteSkipped()                       {}
func (NoopRecorder) IncUnresolvedReference()                    {}
func (NoopRecorder) IncLinkWarnings(int)                        {}
