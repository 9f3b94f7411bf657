// Package source provides the data-source collaborators that supply
// document records to the index builder. A source only produces records;
// it never sees the index. Record order determines identifier assignment
// (first record becomes document 1).
package source

import (
	"context"

	"github.com/retriva/retriva/internal/corpus"
)

// Source supplies an ordered sequence of document records. Implementations
// report their own I/O failures; the retrieval core performs no I/O.
type Source interface {
	Documents(ctx context.Context) ([]corpus.Document, error)
}

// Static is an in-memory source backed by a fixed slice of records. It is
// the default source for local development and tests.
type Static struct {
	docs []corpus.Document
}

// NewStatic returns a source yielding the given records in order.
func NewStatic(docs []corpus.Document) *Static {
	return &Static{docs: docs}
}

// Documents returns the fixed records.
func (s *Static) Documents(ctx context.Context) ([]corpus.Document, error) {
	return s.docs, nil
}

// SampleDocuments is the bundled demo corpus: seven short records about
// explorers and Northern Renaissance painters. It is served when no file
// or database source is configured.
func SampleDocuments() []corpus.Document {
	return []corpus.Document{
		{
			Title:       "Christopher Columbus",
			Description: "Christopher Columbus was an Italian explorer and navigator famed for his Atlantic voyages",
		},
		{
			Title:       "Galileo Galilei",
			Description: "Galileo Galilei was an Italian astronomer and physicist from Pisa",
		},
		{
			Title:       "Carlo Collodi",
			Description: "Carlo Collodi was an Italian author best known for the story of Pinocchio",
		},
		{
			Title:       "Jan van Eyck",
			Description: "Jan van Eyck was a painter of the Northern Renaissance whose art defined early Flemish panel painting",
		},
		{
			Title:       "Hubert van Eyck",
			Description: "Hubert van Eyck was a Northern Renaissance painter whose art and workshop shaped his brother Jan",
		},
		{
			Title:       "The Ghent Altarpiece",
			Description: "The Ghent Altarpiece by the van Eyck brothers is a monumental polyptych of the Northern Renaissance",
		},
		{
			Title:       "The Northern Renaissance",
			Description: "The Northern Renaissance brought a new realism to painting across Europe north of the Alps",
		},
	}
}
