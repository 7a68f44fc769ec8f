package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"PaperSummarizer/internal/domain"
	"PaperSummarizer/internal/ports"
)

// PostgresRepository persists completed summaries into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.SummaryRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadySummarized returns a map with paper IDs that already exist in
// storage.
func (r *PostgresRepository) AlreadySummarized(ctx context.Context, ids []string) (map[string]bool, error) {
	if r.db == nil || len(ids) == 0 {
		return map[string]bool{}, nil
	}

	rows, err := r.builder.
		Select("paper_id").
		From("paper_summaries").
		Where(sq.Eq{"paper_id": ids}).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query summarized: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		result[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveSummary upserts the summary snapshot for a paper.
func (r *PostgresRepository) SaveSummary(ctx context.Context, rec domain.StoredSummary) error {
	if r.db == nil {
		return nil
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.builder.
		Insert("paper_summaries").
		Columns("id", "paper_id", "title", "method", "summary", "focus_chars", "num_chunks", "created_at").
		Values(uuid.NewString(), rec.PaperID, rec.Title, string(rec.Method), rec.Summary, rec.FocusChars, rec.NumChunks, createdAt).
		Suffix(`ON CONFLICT (paper_id) DO UPDATE
			SET title = EXCLUDED.title,
			    method = EXCLUDED.method,
			    summary = EXCLUDED.summary,
			    focus_chars = EXCLUDED.focus_chars,
			    num_chunks = EXCLUDED.num_chunks,
			    updated_at = NOW()`).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}

	return nil
}
