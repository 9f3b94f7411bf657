package searcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/retriva/retriva/internal/corpus"
	"github.com/retriva/retriva/internal/indexer"
	"github.com/retriva/retriva/internal/indexer/index"
	"github.com/retriva/retriva/internal/indexer/tokenizer"
	"github.com/retriva/retriva/internal/source"
	"github.com/retriva/retriva/pkg/tracing"
)

// Options configures a single search call. The zero value means OR
// semantics, no ranking, and the searcher's own index and corpus.
type Options struct {
	Op   Operator
	Rank bool
	// Index and Corpus, when non-nil, override the searcher's prebuilt
	// pair so callers can query an index of their own.
	Index  *index.Index
	Corpus *corpus.Store
}

// Hit is one matched document in a search result.
type Hit struct {
	DocID       index.DocID `json:"doc_id"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Score       int         `json:"score,omitempty"`
}

// Result is the outcome of one search call.
type Result struct {
	Query     string         `json:"query"`
	Operator  string         `json:"operator"`
	Ranked    bool           `json:"ranked"`
	TotalHits int            `json:"total_hits"`
	Hits      []Hit          `json:"hits"`
	TermStats map[string]int `json:"term_stats,omitempty"`
}

// Searcher is the query entry point. It lazily builds a default index
// from a bounded prefix of its data source on the first call that does
// not supply a prebuilt index.
type Searcher struct {
	src          source.Source
	defaultLimit int

	buildOnce sync.Once
	buildErr  error
	ix        *index.Index
	store     *corpus.Store

	logger *slog.Logger
}

// New returns a Searcher over src. defaultLimit caps the number of
// documents consumed when the searcher has to build its own index; zero
// means no cap.
func New(src source.Source, defaultLimit int) *Searcher {
	return &Searcher{
		src:          src,
		defaultLimit: defaultLimit,
		logger:       slog.Default().With("component", "searcher"),
	}
}

// Index returns the searcher's own index, building it on first use.
func (s *Searcher) Index(ctx context.Context) (*index.Index, *corpus.Store, error) {
	s.buildOnce.Do(func() {
		s.ix, s.store, s.buildErr = indexer.Build(ctx, s.src, indexer.BuildOptions{
			MaxDocuments: s.defaultLimit,
			WithCorpus:   true,
		})
	})
	return s.ix, s.store, s.buildErr
}

// Search evaluates query against the effective index and returns the
// matched documents, ranked when requested and otherwise in ascending
// identifier order.
func (s *Searcher) Search(ctx context.Context, query string, opts Options) (*Result, error) {
	ix := opts.Index
	store := opts.Corpus
	if ix == nil {
		var err error
		ix, store, err = s.Index(ctx)
		if err != nil {
			return nil, fmt.Errorf("building default index: %w", err)
		}
		if opts.Corpus != nil {
			store = opts.Corpus
		}
	}

	terms := tokenizer.Tokenize(query)

	_, evalSpan := tracing.StartChildSpan(ctx, "evaluate")
	matched := Evaluate(query, ix, opts.Op)
	evalSpan.SetAttr("matched", matched.Len())
	evalSpan.End()

	var ids []index.DocID
	if opts.Rank {
		_, rankSpan := tracing.StartChildSpan(ctx, "rank")
		ids = Rank(matched, terms, ix)
		rankSpan.End()
	} else {
		ids = matched.IDs()
	}

	result := &Result{
		Query:     query,
		Operator:  opts.Op.String(),
		Ranked:    opts.Rank,
		TotalHits: matched.Len(),
		Hits:      make([]Hit, 0, len(ids)),
		TermStats: make(map[string]int, len(terms)),
	}
	for _, term := range terms {
		if postings, found := ix.Lookup(term); found {
			result.TermStats[term] = postings.Len()
		}
	}
	for _, id := range ids {
		hit := Hit{DocID: id}
		if opts.Rank {
			hit.Score = TermScore(id, terms, ix)
		}
		if store != nil {
			if doc, ok := store.Get(id); ok {
				hit.Title = doc.Title
				hit.Description = doc.Description
			}
		}
		result.Hits = append(result.Hits, hit)
	}
	s.logger.Debug("query evaluated",
		"query", query,
		"operator", opts.Op.String(),
		"ranked", opts.Rank,
		"total_hits", result.TotalHits,
	)
	return result, nil
}
