package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"ArticleAllocator/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository remembers handled article IDs across runs, backing the
// already-handled exclusion.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.HandledRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// AlreadyHandled returns a map with IDs that already exist in storage.
func (r *PostgresRepository) AlreadyHandled(ctx context.Context, ids []string) (map[string]bool, error) {
	if r.db == nil || len(ids) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := psql.
		Select("article_id").
		From("handled_articles").
		Where(sq.Eq{"article_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build handled query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query handled: %w", err)
	}

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan id: %w", err)
		}
		result[id] = true
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// MarkHandled records the IDs assigned by a submitted run; repeats are
// ignored so a re-submitted batch stays a no-op.
func (r *PostgresRepository) MarkHandled(ctx context.Context, ids []string) error {
	if r.db == nil || len(ids) == 0 {
		return nil
	}

	builder := psql.Insert("handled_articles").Columns("article_id")
	for _, id := range ids {
		builder = builder.Values(id)
	}
	builder = builder.Suffix("ON CONFLICT (article_id) DO NOTHING")

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build handled insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert handled: %w", err)
	}

	return nil
}
