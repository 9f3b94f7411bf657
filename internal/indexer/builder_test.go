package indexer_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/retriva/retriva/internal/corpus"
	"github.com/retriva/retriva/internal/indexer"
	"github.com/retriva/retriva/internal/indexer/index"
	"github.com/retriva/retriva/internal/indexer/tokenizer"
	"github.com/retriva/retriva/internal/source"
)

func buildSample(t *testing.T, opts indexer.BuildOptions) (*index.Index, *corpus.Store) {
	t.Helper()
	ix, store, err := indexer.Build(context.Background(), source.NewStatic(source.SampleDocuments()), opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ix, store
}

func TestBuildAssignsSequentialIdentifiers(t *testing.T) {
	docs := source.SampleDocuments()
	ix, store := buildSample(t, indexer.BuildOptions{WithCorpus: true})

	if got := ix.DocCount(); got != len(docs) {
		t.Fatalf("DocCount = %d, want %d", got, len(docs))
	}
	for i := range docs {
		id := index.DocID(i + 1)
		doc, ok := store.Get(id)
		if !ok {
			t.Fatalf("corpus is missing document %d", id)
		}
		if doc.Title != docs[i].Title {
			t.Errorf("document %d has title %q, want %q", id, doc.Title, docs[i].Title)
		}
	}
	if _, ok := store.Get(index.DocID(len(docs) + 1)); ok {
		t.Error("corpus contains an identifier beyond the document count")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first, _ := buildSample(t, indexer.BuildOptions{})
	second, _ := buildSample(t, indexer.BuildOptions{})

	if first.TermCount() != second.TermCount() {
		t.Fatalf("term counts differ: %d vs %d", first.TermCount(), second.TermCount())
	}
	// Every document's own tokens must resolve to identical postings in
	// both indexes.
	for _, doc := range source.SampleDocuments() {
		for _, term := range tokenizer.Tokenize(doc.Text()) {
			a, aOK := first.Lookup(term)
			b, bOK := second.Lookup(term)
			if aOK != bOK {
				t.Fatalf("term %q present in one build only", term)
			}
			if !reflect.DeepEqual(a.IDs(), b.IDs()) {
				t.Errorf("postings for %q differ: %v vs %v", term, a.IDs(), b.IDs())
			}
		}
	}
}

func TestBuildPostingsCorrectness(t *testing.T) {
	docs := source.SampleDocuments()
	ix, _ := buildSample(t, indexer.BuildOptions{})

	// D is in Index[T] iff T appears case-folded, space-delimited in D's
	// title+description.
	for i, doc := range docs {
		id := index.DocID(i + 1)
		text := strings.ToLower(doc.Text())
		tokens := make(map[string]struct{})
		for _, tok := range strings.Split(text, " ") {
			if tok != "" {
				tokens[tok] = struct{}{}
			}
		}
		for term := range tokens {
			postings, found := ix.Lookup(term)
			if !found {
				t.Fatalf("term %q from document %d is not indexed", term, id)
			}
			if !postings.Contains(id) {
				t.Errorf("document %d missing from postings of its own term %q", id, term)
			}
		}
		// Spot-check the converse for a term this document does not have.
		if _, has := tokens["art"]; !has {
			if postings, found := ix.Lookup("art"); found && postings.Contains(id) {
				t.Errorf("document %d appears in postings of \"art\" it does not contain", id)
			}
		}
	}
}

func TestBuildMaxDocumentsCapsPrefix(t *testing.T) {
	ix, store := buildSample(t, indexer.BuildOptions{MaxDocuments: 3, WithCorpus: true})

	if got := ix.DocCount(); got != 3 {
		t.Errorf("DocCount = %d, want 3", got)
	}
	if got := store.Len(); got != 3 {
		t.Errorf("corpus size = %d, want 3", got)
	}
	// Terms unique to later documents must be absent.
	if _, found := ix.Lookup("eyck"); found {
		t.Error("capped build indexed a document beyond the prefix")
	}
}

func TestBuildWithoutCorpusReturnsNilStore(t *testing.T) {
	_, store := buildSample(t, indexer.BuildOptions{})
	if store != nil {
		t.Error("expected nil corpus store when WithCorpus is unset")
	}
}

func TestBuildEmptyFieldsContributeNoTerms(t *testing.T) {
	src := source.NewStatic([]corpus.Document{
		{Title: "", Description: ""},
		{Title: "only title", Description: ""},
	})
	ix, _, err := indexer.Build(context.Background(), src, indexer.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := ix.DocCount(); got != 2 {
		t.Fatalf("DocCount = %d, want 2", got)
	}
	postings, found := ix.Lookup("title")
	if !found {
		t.Fatal("expected term \"title\" to be indexed")
	}
	if got, want := postings.IDs(), []index.DocID{2}; !reflect.DeepEqual(got, want) {
		t.Errorf("postings for \"title\" = %v, want %v", got, want)
	}
}
