package usage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles gift_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseQuota atomically checks the monthly quota and deducts one generation.
// It resets the counter to DefaultMonthlyQuota when last_reset_month is
// behind the current month. Returns ErrQuotaExhausted when 0 rows are
// updated (quota exhausted or client absent).
func (s *Store) UseQuota(ctx context.Context, clientID string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE gift_usage SET
			generations_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE generations_remaining - 1 END,
			last_reset_month = $1
		WHERE client_id = $3 AND (last_reset_month < $1 OR generations_remaining > 0)
	`, now, DefaultMonthlyQuota, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureClient inserts a new gift_usage row for the client with the
// default allowance. If the row already exists the insert is silently
// skipped (ON CONFLICT DO NOTHING).
func (s *Store) EnsureClient(ctx context.Context, clientID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO gift_usage (client_id, generations_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO NOTHING
	`, clientID, DefaultMonthlyQuota, time.Now().Format("2006-01"))
	return err
}

// InsertRecord appends one generation log row.
func (s *Store) InsertRecord(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO gift_generation_log (client_id, intent, model, ideas, proposals, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ClientID, r.Intent, r.Model, r.Ideas, r.Proposals, r.Duration.Milliseconds(), r.CreatedAt)
	return err
}
