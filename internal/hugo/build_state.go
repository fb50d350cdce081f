package hugo

import (
	"sync/atomic"

	"git.home.luguber.info/inful/apidocgen/internal/config"
	"git.home.luguber.info/inful/apidocgen/internal/linker"
	"git.home.luguber.info/inful/apidocgen/internal/metadata"
	"git.home.luguber.info/inful/apidocgen/internal/metrics"
	"git.home.luguber.info/inful/apidocgen/internal/paths"
)

// page is one resolved output document waiting to be written.
type page struct {
	item    *metadata.Item // nil for the root index
	relPath string         // resolved path, e.g. "Button/_index"
}

// BuildState carries everything the stages share. The store is populated by
// the load stage, frozen by the finalize stage, and read-only from the
// render stage on; only the path registry and the counters are touched
// concurrently.
type BuildState struct {
	Config   *config.Config
	Recorder metrics.Recorder

	Store    *metadata.Store
	Paths    *paths.Resolver
	Links    *linker.Resolver
	Registry *paths.Registry

	pages []page

	rendered     atomic.Int64
	linkWarnings atomic.Int64
}

// Rendered returns the number of documents written so far.
func (bs *BuildState) Rendered() int64 {
	return bs.rendered.Load()
}

// LinkWarnings returns the number of link audit warnings.
func (bs *BuildState) LinkWarnings() int64 {
	return bs.linkWarnings.Load()
}
