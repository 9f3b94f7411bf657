package searcher

import (
	"sort"

	"github.com/retriva/retriva/internal/indexer/index"
)

// Rank orders the matched documents by relevance: a document satisfying
// more distinct query terms ranks above one satisfying fewer, with ties
// broken by ascending document identifier. The resulting order is total
// and identical across repeated calls on the same index and query.
func Rank(matched index.PostingsSet, terms []string, ix *index.Index) []index.DocID {
	type scored struct {
		id    index.DocID
		score int
	}
	docs := make([]scored, 0, matched.Len())
	for _, id := range matched.IDs() {
		docs = append(docs, scored{id: id, score: TermScore(id, terms, ix)})
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].score != docs[j].score {
			return docs[i].score > docs[j].score
		}
		return docs[i].id < docs[j].id
	})
	ids := make([]index.DocID, len(docs))
	for i, d := range docs {
		ids[i] = d.id
	}
	return ids
}

// TermScore returns how many of the given query terms the document's
// postings membership satisfies.
func TermScore(id index.DocID, terms []string, ix *index.Index) int {
	score := 0
	for _, term := range terms {
		if postings, found := ix.Lookup(term); found && postings.Contains(id) {
			score++
		}
	}
	return score
}
