// Package paths maps items to unique relative output locations.
//
// Namespaces and type definitions become directory indexes; members become
// leaf documents inside their parent type's directory. Uniqueness is
// enforced case-insensitively through Registry, since the output may land on
// a case-insensitive filesystem.
package paths

import (
	"strings"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/metadata"
)

// Resolver computes output paths against a finalized store.
type Resolver struct {
	store *metadata.Store
}

// NewResolver creates a resolver. The store must be finalized: paths depend
// on ShortUID and case suffixes, which only exist after the whole-store pass.
func NewResolver(store *metadata.Store) (*Resolver, error) {
	if !store.Frozen() {
		return nil, errors.InternalError("path resolver requires a finalized store").Build()
	}
	return &Resolver{store: store}, nil
}

// Resolve returns the normalized unique relative path for an item.
func (r *Resolver) Resolve(it *metadata.Item) (string, error) {
	switch {
	case it.Type == metadata.TypeNamespace:
		return sanitize(it.UID + it.CaseSuffix + "/_index"), nil

	case it.Type.IsMember():
		parent, ok := r.store.Item(it.Parent)
		if !ok {
			return "", errors.MetadataError("member parent does not resolve").
				WithContext("uid", it.UID).
				WithContext("parent", it.Parent).Build()
		}
		if parent.Type == metadata.TypeNamespace {
			return "", errors.MetadataError("member item is parented directly under a namespace").
				WithContext("uid", it.UID).
				WithContext("parent", it.Parent).Build()
		}
		return sanitize(stripNamespacePrefix(parent.UID, it.Namespace) + "/" + it.ShortUID + it.CaseSuffix), nil

	default:
		return sanitize(stripNamespacePrefix(it.UID, it.Namespace) + it.CaseSuffix + "/_index"), nil
	}
}

// stripNamespacePrefix removes a single leading "{namespace}." occurrence.
func stripNamespacePrefix(uid, namespace string) string {
	if namespace == "" {
		return uid
	}
	return strings.TrimPrefix(uid, namespace+".")
}

// sanitize rewrites characters that are hostile to URLs and filesystems:
// `#` (nested-type marker) and the generic-arity backtick markers.
func sanitize(path string) string {
	path = strings.ReplaceAll(path, "#", "_")
	path = strings.ReplaceAll(path, "`", "-")
	return path
}
