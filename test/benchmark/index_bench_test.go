// Package benchmark contains Go benchmarks for the inverted index, the
// builder, and the query engine, measuring throughput and allocation
// behaviour.
package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/retriva/retriva/internal/corpus"
	"github.com/retriva/retriva/internal/indexer"
	"github.com/retriva/retriva/internal/indexer/index"
	"github.com/retriva/retriva/internal/source"
)

// syntheticDocs generates n documents cycling over a small vocabulary so
// that postings sets stay densely populated.
func syntheticDocs(n int) []corpus.Document {
	vocab := []string{"retrieval", "boolean", "postings", "index", "query", "ranking", "corpus", "term"}
	docs := make([]corpus.Document, n)
	for i := range docs {
		docs[i] = corpus.Document{
			Title:       fmt.Sprintf("document about %s and %s", vocab[i%len(vocab)], vocab[(i+1)%len(vocab)]),
			Description: fmt.Sprintf("this record covers %s %s %s in depth", vocab[i%len(vocab)], vocab[(i+2)%len(vocab)], vocab[(i+3)%len(vocab)]),
		}
	}
	return docs
}

// BenchmarkIndexAdd measures per-document insert throughput into the
// inverted index.
func BenchmarkIndexAdd(b *testing.B) {
	ix := index.New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Add(index.DocID(i+1), "benchmark title this is a benchmark document with several terms for measuring indexing throughput")
	}
}

// BenchmarkBuild measures full index construction at various corpus sizes.
func BenchmarkBuild(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("docs_%d", size), func(b *testing.B) {
			src := source.NewStatic(syntheticDocs(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _, err := indexer.Build(context.Background(), src, indexer.BuildOptions{})
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuildWithCorpus measures the added cost of populating the
// corpus store in lockstep with the index.
func BenchmarkBuildWithCorpus(b *testing.B) {
	src := source.NewStatic(syntheticDocs(1000))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := indexer.Build(context.Background(), src, indexer.BuildOptions{WithCorpus: true})
		if err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLookup measures single-term lookup latency over 10 000
// documents.
func BenchmarkLookup(b *testing.B) {
	ix, _, err := indexer.Build(context.Background(), source.NewStatic(syntheticDocs(10000)), indexer.BuildOptions{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		postings, _ := ix.Lookup("postings")
		_ = postings
	}
}
