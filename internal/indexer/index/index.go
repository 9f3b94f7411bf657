// Package index implements the in-memory inverted index at the heart of
// the retrieval engine: a mapping from normalised term to the postings set
// of documents containing that term. The index is built once per run by
// the Builder and is read-only afterwards, so any number of queries may
// run against it concurrently without coordination.
package index

import (
	"github.com/retriva/retriva/internal/indexer/tokenizer"
)

// Index maps terms to postings sets. All mutation happens inside the
// builder's single construction pass; Lookup and the stats accessors are
// safe for concurrent use once the build has finished.
type Index struct {
	postings map[string]PostingsSet
	docCount int
}

// New returns an empty index.
func New() *Index {
	return &Index{
		postings: make(map[string]PostingsSet),
	}
}

// Add tokenizes text and inserts id into the postings set of every
// resulting term, creating sets for terms seen for the first time.
func (ix *Index) Add(id DocID, text string) {
	for _, term := range tokenizer.Tokenize(text) {
		set, ok := ix.postings[term]
		if !ok {
			set = make(PostingsSet)
			ix.postings[term] = set
		}
		set.Add(id)
	}
	ix.docCount++
}

// Lookup returns the postings set for term. The boolean distinguishes a
// term that is absent from the index from one with an empty set; the two
// are treated differently by boolean query evaluation.
func (ix *Index) Lookup(term string) (PostingsSet, bool) {
	set, ok := ix.postings[term]
	return set, ok
}

// TermCount returns the number of distinct terms in the index.
func (ix *Index) TermCount() int {
	return len(ix.postings)
}

// DocCount returns the number of documents added to the index.
func (ix *Index) DocCount() int {
	return ix.docCount
}
