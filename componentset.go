package silo

import (
	"sort"

	"github.com/TheBitDrifter/mask"
)

// ComponentSet is the canonical, ascending-ordered set of component ids
// an archetype (or a query) is defined over. Two archetypes with the
// same set never coexist.
type ComponentSet []ComponentID

// newComponentSet builds a canonical set from a (possibly unsorted,
// possibly duplicated) list of components, returning a
// ComponentDuplicateError for the first repeated id.
func newComponentSet(components ...Component) (ComponentSet, error) {
	set := make(ComponentSet, 0, len(components))
	for _, c := range components {
		set = append(set, c.ID())
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	for i := 1; i < len(set); i++ {
		if set[i] == set[i-1] {
			return nil, ComponentDuplicateError{Component: set[i]}
		}
	}
	return set, nil
}

// mask returns the bitset identity of the set, used as the archetype
// graph's dedup key (mask.Mask is comparable, so it works directly as a
// map key, the way warehouse.archetypes.idsGroupedByMask does).
func (s ComponentSet) mask() mask.Mask {
	var m mask.Mask
	for _, id := range s {
		m.Mark(uint32(id))
	}
	return m
}

// contains reports whether id is a member of the set.
func (s ComponentSet) contains(id ComponentID) bool {
	_, found := sort.Find(len(s), func(i int) int {
		switch {
		case s[i] < id:
			return 1
		case s[i] > id:
			return -1
		default:
			return 0
		}
	})
	return found
}

// withAdded returns a new canonical set containing id in addition to
// s's members. id must not already be a member.
func (s ComponentSet) withAdded(id ComponentID) ComponentSet {
	out := make(ComponentSet, 0, len(s)+1)
	inserted := false
	for _, existing := range s {
		if !inserted && id < existing {
			out = append(out, id)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, id)
	}
	return out
}

// withRemoved returns a new canonical set without id.
func (s ComponentSet) withRemoved(id ComponentID) ComponentSet {
	out := make(ComponentSet, 0, len(s))
	for _, existing := range s {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// equal reports whether two canonical sets contain the same ids.
func (s ComponentSet) equal(other ComponentSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
