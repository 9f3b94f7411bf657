// Package indexer builds the inverted index (and optionally the corpus
// store) from a data source in a single construction pass.
package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/retriva/retriva/internal/corpus"
	"github.com/retriva/retriva/internal/indexer/index"
	"github.com/retriva/retriva/internal/source"
)

// BuildOptions controls one indexing run.
type BuildOptions struct {
	// MaxDocuments caps how many records are consumed from the source.
	// Zero means no cap.
	MaxDocuments int
	// WithCorpus also populates a corpus store in lockstep with the
	// index, for callers that need titles and descriptions at query time.
	WithCorpus bool
}

// Build consumes the source's records in order, assigns identifiers
// sequentially from 1, and folds each document's title+description text
// into a fresh index. When opts.WithCorpus is set the returned store maps
// every assigned identifier to its record; otherwise the store is nil.
func Build(ctx context.Context, src source.Source, opts BuildOptions) (*index.Index, *corpus.Store, error) {
	docs, err := src.Documents(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching documents: %w", err)
	}
	if opts.MaxDocuments > 0 && len(docs) > opts.MaxDocuments {
		docs = docs[:opts.MaxDocuments]
	}

	ix := index.New()
	var store *corpus.Store
	if opts.WithCorpus {
		store = corpus.NewStore()
	}
	for i, doc := range docs {
		id := index.DocID(i + 1)
		ix.Add(id, doc.Text())
		if store != nil {
			store.Put(id, doc)
		}
	}
	slog.Default().With("component", "indexer").Info("index built",
		"docs", ix.DocCount(),
		"terms", ix.TermCount(),
		"with_corpus", opts.WithCorpus,
	)
	return ix, store, nil
}
