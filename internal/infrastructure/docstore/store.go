// Package docstore stores schemaless JSON documents in Postgres. Every record
// of the engine lives in one documents table keyed by (workspace, collection,
// id), with a JSONB body queried through containment filters. Older clients
// wrote documents with fields the engine does not model; the JSONB body keeps
// them intact across rewrites.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no document matches.
var ErrNotFound = errors.New("document not found")

// Store is a workspace-scoped JSON document store backed by Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get fetches one document body.
func (s *Store) Get(ctx context.Context, workspaceID, collection, id string) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE workspace_id = $1 AND collection = $2 AND id = $3`,
		workspaceID, collection, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return data, nil
}

// Create inserts a new document.
func (s *Store) Create(ctx context.Context, workspaceID, collection, id string, data []byte) error {
	now := time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (workspace_id, collection, id, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		workspaceID, collection, id, data, now,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Update replaces a document body.
func (s *Store) Update(ctx context.Context, workspaceID, collection, id string, data []byte) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET data = $4, updated_at = $5
		 WHERE workspace_id = $1 AND collection = $2 AND id = $3`,
		workspaceID, collection, id, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, workspaceID, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE workspace_id = $1 AND collection = $2 AND id = $3`,
		workspaceID, collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns document bodies of a collection, up to limit; limit <= 0 means
// no cap.
func (s *Store) List(ctx context.Context, workspaceID, collection string, limit int) ([][]byte, error) {
	query := `SELECT data FROM documents WHERE workspace_id = $1 AND collection = $2 ORDER BY created_at`
	args := []any{workspaceID, collection}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	return collectBodies(rows)
}

// Query returns document bodies whose JSONB body contains the filter. The
// filter must marshal to a JSON object, e.g. {"cardId":"..."}.
func (s *Store) Query(ctx context.Context, workspaceID, collection string, filter []byte) ([][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM documents
		 WHERE workspace_id = $1 AND collection = $2 AND data @> $3::jsonb
		 ORDER BY created_at`,
		workspaceID, collection, filter,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	return collectBodies(rows)
}

// Workspaces enumerates every workspace id known to the store.
func (s *Store) Workspaces(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT workspace_id FROM documents ORDER BY workspace_id`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan workspace id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func collectBodies(rows pgx.Rows) ([][]byte, error) {
	var bodies [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		bodies = append(bodies, data)
	}
	return bodies, rows.Err()
}
