// Package linker resolves identifier strings into formatted references:
// internal links for items owned by the store, external links for
// identifiers a recognized documentation authority covers, and code-styled
// plain text for everything else.
package linker

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/apidocgen/internal/metadata"
	"git.home.luguber.info/inful/apidocgen/internal/paths"
)

// ResolutionKind classifies how an identifier was resolved.
type ResolutionKind string

const (
	KindItem       ResolutionKind = "item"       // internal link
	KindAuthority  ResolutionKind = "authority"  // external authority link
	KindReference  ResolutionKind = "reference"  // known but unlinked
	KindUnresolved ResolutionKind = "unresolved" // plain text degradation
)

// Resolution is the outcome of resolving one identifier.
type Resolution struct {
	Markdown string
	Kind     ResolutionKind
}

// Resolver resolves identifiers against a finalized store.
type Resolver struct {
	store    *metadata.Store
	paths    *paths.Resolver
	basePath string
	rules    []AuthorityRule
}

// NewResolver creates a resolver. Rules are reordered
// most-specific-prefix-first; pass nil to use DefaultAuthorities.
func NewResolver(store *metadata.Store, pathResolver *paths.Resolver, basePath string, rules []AuthorityRule) *Resolver {
	if rules == nil {
		rules = DefaultAuthorities()
	}
	return &Resolver{
		store:    store,
		paths:    pathResolver,
		basePath: basePath,
		rules:    orderRules(rules),
	}
}

// Resolve turns an identifier into a formatted reference.
//
// Resolution order: internal item, reference-store entry (authority link or
// unlinked name), raw identifier. An unresolvable identifier is not an
// error; it degrades to code-styled text. The only error case is a
// structural path failure on an internal item.
func (r *Resolver) Resolve(identifier string) (Resolution, error) {
	ident, arraySuffix := splitArraySuffix(identifier)

	if it, ok := r.store.Item(ident); ok {
		target, err := r.paths.Resolve(it)
		if err != nil {
			return Resolution{}, err
		}
		display := it.Name + arraySuffix
		url := paths.SiteURL(r.basePath, target)
		return Resolution{
			Markdown: fmt.Sprintf("[%s](%s)", display, url),
			Kind:     KindItem,
		}, nil
	}

	if ref, ok := r.store.Reference(ident); ok {
		bare := stripParameterList(ident)
		for _, rule := range r.rules {
			if !rule.matches(bare) {
				continue
			}
			display := displayName(bare, rule.Aliases) + arraySuffix
			return Resolution{
				Markdown: fmt.Sprintf("[%s](%s)", display, rule.url(bare)),
				Kind:     KindAuthority,
			}, nil
		}

		name := ref.Name
		if name == "" {
			name = ref.UID
		}
		return Resolution{
			Markdown: codeSpan(name + arraySuffix),
			Kind:     KindReference,
		}, nil
	}

	return Resolution{
		Markdown: codeSpan(ident + arraySuffix),
		Kind:     KindUnresolved,
	}, nil
}

func splitArraySuffix(identifier string) (ident, suffix string) {
	if strings.HasSuffix(identifier, "[]") {
		return strings.TrimSuffix(identifier, "[]"), "[]"
	}
	return identifier, ""
}

// stripParameterList drops a trailing "(...)" parameter list from a UID.
func stripParameterList(uid string) string {
	if idx := strings.Index(uid, "("); idx >= 0 {
		return uid[:idx]
	}
	return uid
}

// displayName picks the fixed alias when the UID is a known built-in type,
// else the last dotted segment.
func displayName(uid string, aliases map[string]string) string {
	if alias, ok := aliases[uid]; ok {
		return alias
	}
	if idx := strings.LastIndex(uid, "."); idx >= 0 {
		return uid[idx+1:]
	}
	return uid
}

func codeSpan(text string) string {
	return "`" + text + "`"
}
