package paths

import (
	"sort"
	"sync"

	"golang.org/x/text/cases"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
)

// Registry is the set of output paths claimed during one run. Rendering may
// fan out across workers; the registry is the single synchronization point
// guarding path uniqueness.
type Registry struct {
	mu      sync.Mutex
	fold    cases.Caser
	claimed map[string]string // case-folded path -> original path
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fold:    cases.Fold(),
		claimed: make(map[string]string),
	}
}

// Claim records a path. Claiming a path that collides case-insensitively
// with an earlier claim is a fatal error: the second document would
// overwrite the first on a case-insensitive filesystem.
func (r *Registry) Claim(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.fold.String(path)
	if existing, ok := r.claimed[key]; ok {
		return errors.PathError("duplicate output path").
			WithContext("path", path).
			WithContext("existing", existing).Build()
	}
	r.claimed[key] = path
	return nil
}

// Claimed reports whether a path (case-insensitively) has been claimed.
func (r *Registry) Claimed(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.claimed[r.fold.String(path)]
	return ok
}

// Paths returns all claimed paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.claimed))
	for _, p := range r.claimed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
