// Package metrics defines the Recorder abstraction used by the generate
// pipeline and a Prometheus-backed implementation. The pipeline is a batch
// process, so metrics are primarily useful when apidocgen runs under a CI
// scraper or when the caller dumps the registry at exit.
package metrics
