// Package searcher implements boolean query evaluation over a prebuilt
// inverted index, with optional relevance ranking of the matched set.
package searcher

import (
	"fmt"
	"strings"

	"github.com/retriva/retriva/internal/indexer/index"
	"github.com/retriva/retriva/internal/indexer/tokenizer"
	apperrors "github.com/retriva/retriva/pkg/errors"
)

// Operator selects how per-term postings sets are combined.
type Operator int

const (
	// OpOR matches documents containing any query term. Default.
	OpOR Operator = iota
	// OpAND matches documents containing every query term.
	OpAND
)

// String returns the operator's query-string form.
func (op Operator) String() string {
	if op == OpAND {
		return "AND"
	}
	return "OR"
}

// ParseOperator converts a query-string value to an Operator. The empty
// string defaults to OR.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "OR":
		return OpOR, nil
	case "AND":
		return OpAND, nil
	default:
		return OpOR, fmt.Errorf("%w: unknown operator %q", apperrors.ErrInvalidQuery, s)
	}
}

// Evaluate tokenizes query, looks up each term's postings set, and
// combines the sets according to op. A term absent from the index is a
// first-class outcome distinct from an empty postings set: under AND any
// missing term forces an empty result, under OR missing terms contribute
// nothing. Combination is left to right; intersection and union are
// commutative and associative, so term order never changes the result.
// The returned set is freshly allocated and unordered.
func Evaluate(query string, ix *index.Index, op Operator) index.PostingsSet {
	terms := tokenizer.Tokenize(query)
	if len(terms) == 0 {
		return make(index.PostingsSet)
	}

	var result index.PostingsSet
	for _, term := range terms {
		postings, found := ix.Lookup(term)
		switch op {
		case OpAND:
			if !found {
				return make(index.PostingsSet)
			}
			if result == nil {
				result = postings.Clone()
			} else {
				result = result.Intersect(postings)
			}
		case OpOR:
			if !found {
				continue
			}
			if result == nil {
				result = postings.Clone()
			} else {
				result = result.Union(postings)
			}
		}
	}
	if result == nil {
		result = make(index.PostingsSet)
	}
	return result
}
