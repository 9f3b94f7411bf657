package benchmark

import (
	"context"
	"testing"

	"github.com/retriva/retriva/internal/indexer"
	"github.com/retriva/retriva/internal/indexer/tokenizer"
	"github.com/retriva/retriva/internal/searcher"
	"github.com/retriva/retriva/internal/source"
)

// BenchmarkEvaluateOR measures OR query evaluation over 10 000 documents.
func BenchmarkEvaluateOR(b *testing.B) {
	ix, _, err := indexer.Build(context.Background(), source.NewStatic(syntheticDocs(10000)), indexer.BuildOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := searcher.Evaluate("retrieval boolean ranking", ix, searcher.OpOR)
		_ = result
	}
}

// BenchmarkEvaluateAND measures AND query evaluation over 10 000
// documents.
func BenchmarkEvaluateAND(b *testing.B) {
	ix, _, err := indexer.Build(context.Background(), source.NewStatic(syntheticDocs(10000)), indexer.BuildOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := searcher.Evaluate("retrieval boolean ranking", ix, searcher.OpAND)
		_ = result
	}
}

// BenchmarkEvaluateParallel measures concurrent read throughput against a
// shared immutable index.
func BenchmarkEvaluateParallel(b *testing.B) {
	ix, _, err := indexer.Build(context.Background(), source.NewStatic(syntheticDocs(10000)), indexer.BuildOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			result := searcher.Evaluate("retrieval boolean ranking", ix, searcher.OpOR)
			_ = result
		}
	})
}

// BenchmarkRank measures ranking cost over a large matched set.
func BenchmarkRank(b *testing.B) {
	ix, _, err := indexer.Build(context.Background(), source.NewStatic(syntheticDocs(10000)), indexer.BuildOptions{})
	if err != nil {
		b.Fatal(err)
	}
	query := "retrieval boolean ranking corpus"
	terms := tokenizer.Tokenize(query)
	matched := searcher.Evaluate(query, ix, searcher.OpOR)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ranked := searcher.Rank(matched, terms, ix)
		_ = ranked
	}
}

// BenchmarkSearchEndToEnd measures the full Search path including hit
// materialisation from the corpus store.
func BenchmarkSearchEndToEnd(b *testing.B) {
	s := searcher.New(source.NewStatic(syntheticDocs(10000)), 0)
	if _, _, err := s.Index(context.Background()); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := s.Search(context.Background(), "retrieval boolean ranking", searcher.Options{Rank: true})
		if err != nil {
			b.Fatal(err)
		}
		_ = result
	}
}
