package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/retriva/retriva/internal/corpus"
	apperrors "github.com/retriva/retriva/pkg/errors"
	"github.com/retriva/retriva/pkg/postgres"
)

// Postgres reads document records from a PostgreSQL table. Rows are
// returned in primary-key order so that identifier assignment is stable
// across indexing runs over the same table.
type Postgres struct {
	client *postgres.Client
	table  string
}

// NewPostgres returns a source reading from the given table via client.
func NewPostgres(client *postgres.Client, table string) *Postgres {
	return &Postgres{client: client, table: table}
}

// Documents fetches all title/description rows in id order. NULL columns
// are tolerated and read as empty strings.
func (p *Postgres) Documents(ctx context.Context) ([]corpus.Document, error) {
	query := fmt.Sprintf("SELECT title, description FROM %s ORDER BY id", p.table)
	rows, err := p.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying documents from %s: %w", apperrors.ErrSourceUnavailable, p.table, err)
	}
	defer rows.Close()

	var docs []corpus.Document
	for rows.Next() {
		var title, description sql.NullString
		if err := rows.Scan(&title, &description); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		docs = append(docs, corpus.Document{
			Title:       title.String,
			Description: description.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}
	return docs, nil
}
