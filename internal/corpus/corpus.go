// Package corpus holds the document store that maps identifiers back to
// the original records. It is populated in lockstep with the index builder
// and consulted only for result presentation, never for matching.
package corpus

import "github.com/retriva/retriva/internal/indexer/index"

// Document is one record supplied by a data source. Either field may be
// empty; an absent field contributes no terms to the index.
type Document struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Text returns the indexable text of the document: title and description
// joined with a single space.
func (d Document) Text() string {
	return d.Title + " " + d.Description
}

// Store maps document identifiers to their records for one indexing run.
type Store struct {
	docs map[index.DocID]Document
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[index.DocID]Document)}
}

// Put records the document under id.
func (s *Store) Put(id index.DocID, doc Document) {
	s.docs[id] = doc
}

// Get returns the document for id, if present.
func (s *Store) Get(id index.DocID) (Document, bool) {
	doc, ok := s.docs[id]
	return doc, ok
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	return len(s.docs)
}
