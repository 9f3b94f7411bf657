package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/retriva/retriva/internal/corpus"
	apperrors "github.com/retriva/retriva/pkg/errors"
)

// File reads document records from a JSON file containing an array of
// {"title": ..., "description": ...} objects. The path is supplied at
// construction time, never read from ambient process state.
type File struct {
	path string
}

// NewFile returns a source reading from path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Documents parses the file and returns its records in file order.
// Missing fields decode to empty strings and contribute no terms.
func (f *File) Documents(ctx context.Context) ([]corpus.Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading document file %s: %w", apperrors.ErrSourceUnavailable, f.path, err)
	}
	var docs []corpus.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: parsing document file %s: %w", apperrors.ErrSourceUnavailable, f.path, err)
	}
	return docs, nil
}
