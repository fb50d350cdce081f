package metadata

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// disambiguate runs the two whole-store derivation passes. Both are
// computed as global groupings, never per-item lookups, so the result is
// independent of insertion order.
func (s *Store) disambiguate() {
	s.computeShortUIDs()
	s.computeCaseSuffixes()
}

// computeShortUIDs collapses overload sets onto one canonical slug.
//
// A singleton overload group keeps the shared overload key with its trailing
// `*` disambiguation markers stripped; a larger group keeps each member's
// full UID, since the collapsed form would be ambiguous. Items without an
// overload key fall back to their full UID rather than collapsing onto the
// shared empty key.
func (s *Store) computeShortUIDs() {
	byOverload := make(map[string][]*Item)
	for _, uid := range s.order {
		it := s.items[uid]
		if it.Overload == "" {
			it.ShortUID = it.UID
			continue
		}
		byOverload[it.Overload] = append(byOverload[it.Overload], it)
	}

	for overload, group := range byOverload {
		if len(group) == 1 {
			group[0].ShortUID = strings.TrimRight(overload, "*")
			continue
		}
		for _, it := range group {
			it.ShortUID = it.UID
		}
	}
}

// computeCaseSuffixes assigns each member of a case-folded UID group its
// zero-based rank (ordinal sort of the original-case UIDs) as a string
// suffix. Singleton groups get the empty suffix. This keeps output paths
// unique on case-insensitive filesystems.
func (s *Store) computeCaseSuffixes() {
	fold := cases.Fold()

	byFolded := make(map[string][]string)
	for _, uid := range s.order {
		key := fold.String(uid)
		byFolded[key] = append(byFolded[key], uid)
	}

	for _, group := range byFolded {
		if len(group) < 2 {
			continue
		}
		sort.Strings(group)
		for i, uid := range group {
			s.items[uid].CaseSuffix = strconv.Itoa(i)
		}
	}
}
