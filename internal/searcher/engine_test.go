package searcher_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/retriva/retriva/internal/indexer"
	"github.com/retriva/retriva/internal/indexer/index"
	"github.com/retriva/retriva/internal/searcher"
	"github.com/retriva/retriva/internal/source"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// sampleIndex builds the seven-document demo corpus once per test.
func sampleIndex(t *testing.T) *index.Index {
	t.Helper()
	ix, _, err := indexer.Build(context.Background(), source.NewStatic(source.SampleDocuments()), indexer.BuildOptions{})
	if err != nil {
		t.Fatalf("building sample index: %v", err)
	}
	return ix
}

func ids(set index.PostingsSet) []index.DocID {
	return set.IDs()
}

func docIDs(values ...int) []index.DocID {
	out := make([]index.DocID, len(values))
	for i, v := range values {
		out[i] = index.DocID(v)
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixture scenarios
// ---------------------------------------------------------------------------

func TestEvaluateScenarios(t *testing.T) {
	ix := sampleIndex(t)

	tests := []struct {
		name  string
		query string
		op    searcher.Operator
		want  []index.DocID
	}{
		{"single term OR", "art", searcher.OpOR, docIDs(4, 5)},
		{"unknown term ignored under OR", "van sdfsdfd eyck", searcher.OpOR, docIDs(4, 5, 6)},
		{"unknown term zeroes AND", "van sdfsdfd eyck", searcher.OpAND, nil},
		{"multi term AND", "northern renaissance van eyck", searcher.OpAND, docIDs(4, 5, 6)},
		{"multi term OR", "northern renaissance van eyck", searcher.OpOR, docIDs(4, 5, 6, 7)},
		{"term absent everywhere", "sdfdsfsdfsdfsd", searcher.OpOR, nil},
		{"blank query OR", "", searcher.OpOR, nil},
		{"blank query AND", "", searcher.OpAND, nil},
		{"single term AND is its own postings", "art", searcher.OpAND, docIDs(4, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(searcher.Evaluate(tt.query, ix, tt.op))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Evaluate(%q, %s) = %v, want %v", tt.query, tt.op, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Algebraic properties
// ---------------------------------------------------------------------------

func TestEvaluateANDIsSubsetOfOR(t *testing.T) {
	ix := sampleIndex(t)
	queries := []string{
		"art",
		"van eyck",
		"northern renaissance van eyck",
		"christopher columbus carlo",
		"galileo art northern",
		"sdfdsfsdfsdfsd art",
	}
	for _, q := range queries {
		andSet := searcher.Evaluate(q, ix, searcher.OpAND)
		orSet := searcher.Evaluate(q, ix, searcher.OpOR)
		for id := range andSet {
			if !orSet.Contains(id) {
				t.Errorf("query %q: document %d in AND result but not OR result", q, id)
			}
		}
	}
}

func TestEvaluateTermOrderCommutativity(t *testing.T) {
	ix := sampleIndex(t)
	permutations := []string{
		"northern renaissance van eyck",
		"eyck van renaissance northern",
		"van northern eyck renaissance",
	}
	for _, op := range []searcher.Operator{searcher.OpAND, searcher.OpOR} {
		base := ids(searcher.Evaluate(permutations[0], ix, op))
		for _, q := range permutations[1:] {
			got := ids(searcher.Evaluate(q, ix, op))
			if !reflect.DeepEqual(got, base) {
				t.Errorf("%s result changed with term order: %v vs %v", op, got, base)
			}
		}
	}
}

func TestEvaluateMissingTermORNeutrality(t *testing.T) {
	ix := sampleIndex(t)
	with := ids(searcher.Evaluate("van sdfsdfd eyck", ix, searcher.OpOR))
	without := ids(searcher.Evaluate("van eyck", ix, searcher.OpOR))
	if !reflect.DeepEqual(with, without) {
		t.Errorf("removing a missing term changed the OR result: %v vs %v", with, without)
	}
}

func TestEvaluateMissingTermANDZeroing(t *testing.T) {
	ix := sampleIndex(t)
	queries := []string{
		"art sdfsdfd",
		"sdfsdfd art",
		"northern renaissance van eyck zzzzz",
	}
	for _, q := range queries {
		if got := searcher.Evaluate(q, ix, searcher.OpAND); got.Len() != 0 {
			t.Errorf("AND query %q with missing term returned %v, want empty", q, ids(got))
		}
	}
}

func TestEvaluateResultIsFreshSet(t *testing.T) {
	ix := sampleIndex(t)
	got := searcher.Evaluate("art", ix, searcher.OpOR)
	got.Add(999)
	// A second evaluation must not observe the mutation.
	again := searcher.Evaluate("art", ix, searcher.OpOR)
	if again.Contains(999) {
		t.Error("Evaluate returned a set aliasing index postings")
	}
}

func TestEvaluateQueryDeduplication(t *testing.T) {
	ix := sampleIndex(t)
	single := ids(searcher.Evaluate("art", ix, searcher.OpAND))
	repeated := ids(searcher.Evaluate(strings.Repeat("art ", 5), ix, searcher.OpAND))
	if !reflect.DeepEqual(single, repeated) {
		t.Errorf("duplicate query terms changed the result: %v vs %v", repeated, single)
	}
}
