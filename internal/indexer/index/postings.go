package index

import "sort"

// DocID identifies a document within one indexing run. IDs are assigned
// sequentially starting at 1 in source order and are never reused within
// a run.
type DocID int

// PostingsSet is the set of document identifiers associated with one term.
// It is a presence set: a term occurring multiple times in one document
// contributes its id once.
type PostingsSet map[DocID]struct{}

// NewPostingsSet returns a set containing the given ids.
func NewPostingsSet(ids ...DocID) PostingsSet {
	s := make(PostingsSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id into the set.
func (s PostingsSet) Add(id DocID) {
	s[id] = struct{}{}
}

// Contains reports whether id is in the set.
func (s PostingsSet) Contains(id DocID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of documents in the set.
func (s PostingsSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s PostingsSet) Clone() PostingsSet {
	out := make(PostingsSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Intersect returns a new set with the documents present in both s and
// other. Intersection is commutative and associative, so chaining it over
// query terms in any order yields the same result.
func (s PostingsSet) Intersect(other PostingsSet) PostingsSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(PostingsSet, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns a new set with the documents present in either s or other.
func (s PostingsSet) Union(other PostingsSet) PostingsSet {
	out := make(PostingsSet, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the set's document identifiers in ascending order.
func (s PostingsSet) IDs() []DocID {
	ids := make([]DocID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
