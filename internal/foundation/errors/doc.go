// Package errors provides classified errors for apidocgen.
//
// Every failure the pipeline can produce carries a category (what subsystem
// it belongs to) and a severity (whether the run must abort). The generate
// pipeline treats SeverityFatal as abort-the-batch; SeverityWarning is logged
// and the run continues. There is no retry dimension: the pipeline is a
// deterministic single pass and correctness requires fixing inputs and
// re-running.
package errors
