// Package metadata holds the graph of documentable items and external
// references for one generate run.
//
// Lifecycle: a Store is populated in full, then Finalize runs the
// whole-store derivations (ShortUID, case suffixes) and freezes it. Path and
// reference resolution read global store state that is invalid until
// Finalize has run.
package metadata

import (
	"fmt"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
)

// Store holds the full graph of Items and References.
type Store struct {
	items  map[string]*Item
	order  []string
	refs   map[string]Reference
	frozen bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items: make(map[string]*Item),
		refs:  make(map[string]Reference),
	}
}

// AddItem inserts an item. UIDs are unique within the store; a duplicate is
// a fatal validation error.
func (s *Store) AddItem(it *Item) error {
	if s.frozen {
		return errors.InternalError("item added after store was finalized").
			WithContext("uid", it.UID).Build()
	}
	if it.UID == "" {
		return errors.ValidationError("item has empty uid").Build()
	}
	if !it.Type.Valid() {
		return errors.ValidationError("item has unknown type").
			WithContext("uid", it.UID).
			WithContext("type", string(it.Type)).Build()
	}
	if _, exists := s.items[it.UID]; exists {
		return errors.ValidationError("duplicate item uid").
			WithContext("uid", it.UID).Build()
	}
	s.items[it.UID] = it
	s.order = append(s.order, it.UID)
	return nil
}

// AddReference records an externally observed entity. The first record for a
// UID wins; later duplicates are ignored.
func (s *Store) AddReference(ref Reference) {
	if ref.UID == "" {
		return
	}
	if _, exists := s.refs[ref.UID]; exists {
		return
	}
	s.refs[ref.UID] = ref
}

// Item returns the item with the given UID.
func (s *Store) Item(uid string) (*Item, bool) {
	it, ok := s.items[uid]
	return it, ok
}

// Reference returns the reference record with the given UID.
func (s *Store) Reference(uid string) (Reference, bool) {
	ref, ok := s.refs[uid]
	return ref, ok
}

// Items returns all items in insertion order.
func (s *Store) Items() []*Item {
	out := make([]*Item, 0, len(s.order))
	for _, uid := range s.order {
		out = append(out, s.items[uid])
	}
	return out
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.order)
}

// Frozen reports whether Finalize has run.
func (s *Store) Frozen() bool {
	return s.frozen
}

// Finalize validates the graph, runs the whole-store derivations, and
// freezes the store. It must be called exactly once, after population has
// fully completed.
func (s *Store) Finalize() error {
	if s.frozen {
		return errors.InternalError("store finalized twice").Build()
	}

	for _, uid := range s.order {
		it := s.items[uid]
		if it.Parent == "" {
			if it.Type != TypeNamespace {
				return errors.MetadataError("non-namespace item has no parent").
					WithContext("uid", uid).Build()
			}
			continue
		}
		if _, ok := s.items[it.Parent]; !ok {
			return errors.MetadataError(fmt.Sprintf("parent uid %q does not resolve", it.Parent)).
				WithContext("uid", uid).Build()
		}
	}

	s.disambiguate()
	s.frozen = true
	return nil
}
