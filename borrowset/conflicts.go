// Copyright (c) 2026 The Ledgervm Authors.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package borrowset

import (
	"golang.org/x/exp/slices"

	"github.com/ledgervm/refsafety/refoffset"
)

// Filter restricts which references a BorrowedBy/BorrowsFrom query may
// report. The zero Filter admits everything. Filtering is equivalent to
// running the unfiltered query and intersecting its result; the queried
// id itself is always excluded regardless of the filter.
type Filter struct {
	// Candidates, when non-nil, limits the query to these ids.
	Candidates []RefID
	// Mutable, when non-nil, limits the query to references whose
	// mutability matches it.
	Mutable *bool
}

// Within returns a Filter admitting only ids. A nil ids is an empty
// candidate set, not the absence of one.
func Within(ids []RefID) Filter {
	if ids == nil {
		ids = []RefID{}
	}
	return Filter{Candidates: ids}
}

// MutableOnly returns a Filter admitting only mutable references.
func MutableOnly() Filter {
	mutable := true
	return Filter{Mutable: &mutable}
}

func (f Filter) admits(id RefID, mutable bool) bool {
	if f.Mutable != nil && *f.Mutable != mutable {
		return false
	}
	if f.Candidates == nil {
		return true
	}
	return slices.Contains(f.Candidates, id)
}

// Conflicts is the result of a BorrowedBy query: every reference holding
// a path that equals or strictly extends a path of the queried id,
// partitioned by the shape of the extension on the conflicting side.
//
// Invariant: every inner map in Labeled is non-empty.
type Conflicts struct {
	// Equal holds, ascending, the ids with a path equal to some path of
	// the queried id.
	Equal []RefID
	// Existential maps ids extending some path of the queried id at a
	// wildcard to the location that introduced the extending path.
	Existential map[RefID]refoffset.Loc
	// Labeled maps each concrete extending label to the ids extending at
	// that label, each with the location that introduced the extension.
	Labeled map[refoffset.Offset]map[RefID]refoffset.Loc
}

// Parents is the result of a BorrowsFrom query: every reference some of
// whose paths are equaled or strictly extended by a path of the queried
// id, partitioned the same way Conflicts partitions extensions (here the
// extension is on the queried id's side).
type Parents struct {
	Equal       []RefID
	Existential map[RefID]refoffset.Loc
	Labeled     map[refoffset.Offset]map[RefID]refoffset.Loc
}

func (c *Conflicts) addEqual(id RefID) {
	if !slices.Contains(c.Equal, id) {
		c.Equal = append(c.Equal, id)
	}
}

func (c *Conflicts) addExistential(id RefID, loc refoffset.Loc) {
	if c.Existential == nil {
		c.Existential = make(map[RefID]refoffset.Loc)
	}
	c.Existential[id] = loc
}

func (c *Conflicts) addLabeled(label refoffset.Offset, id RefID, loc refoffset.Loc) {
	if c.Labeled == nil {
		c.Labeled = make(map[refoffset.Offset]map[RefID]refoffset.Loc)
	}
	inner := c.Labeled[label]
	if inner == nil {
		inner = make(map[RefID]refoffset.Loc)
		c.Labeled[label] = inner
	}
	inner[id] = loc
}

// IsEmpty reports whether no conflicting reference was found.
func (c Conflicts) IsEmpty() bool {
	return len(c.Equal) == 0 && len(c.Existential) == 0 && len(c.Labeled) == 0
}

// HasLabel reports whether some reference conflicts at the given concrete
// label.
func (c Conflicts) HasLabel(label refoffset.Offset) bool {
	_, ok := c.Labeled[label]
	return ok
}

// IDs returns, ascending and deduplicated, every id across the three
// partitions.
func (c Conflicts) IDs() []RefID {
	return mergeIDs(c.Equal, c.Existential, c.Labeled)
}

func (p *Parents) addEqual(id RefID) {
	if !slices.Contains(p.Equal, id) {
		p.Equal = append(p.Equal, id)
	}
}

func (p *Parents) addExistential(id RefID, loc refoffset.Loc) {
	if p.Existential == nil {
		p.Existential = make(map[RefID]refoffset.Loc)
	}
	p.Existential[id] = loc
}

func (p *Parents) addLabeled(label refoffset.Offset, id RefID, loc refoffset.Loc) {
	if p.Labeled == nil {
		p.Labeled = make(map[refoffset.Offset]map[RefID]refoffset.Loc)
	}
	inner := p.Labeled[label]
	if inner == nil {
		inner = make(map[RefID]refoffset.Loc)
		p.Labeled[label] = inner
	}
	inner[id] = loc
}

// IsEmpty reports whether no parent reference was found.
func (p Parents) IsEmpty() bool {
	return len(p.Equal) == 0 && len(p.Existential) == 0 && len(p.Labeled) == 0
}

// IDs returns, ascending and deduplicated, every id across the three
// partitions.
func (p Parents) IDs() []RefID {
	return mergeIDs(p.Equal, p.Existential, p.Labeled)
}

func mergeIDs(equal []RefID, existential map[RefID]refoffset.Loc, labeled map[refoffset.Offset]map[RefID]refoffset.Loc) []RefID {
	seen := make(map[RefID]bool, len(equal)+len(existential))
	for _, id := range equal {
		seen[id] = true
	}
	for id := range existential {
		seen[id] = true
	}
	for _, inner := range labeled {
		for id := range inner {
			seen[id] = true
		}
	}
	out := make([]RefID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
