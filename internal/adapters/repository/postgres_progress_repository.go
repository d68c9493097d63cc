package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

type PostgresProgressRepository struct {
	db *sqlx.DB
}

func NewPostgresProgressRepository(db *sqlx.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

// Upsert relies on the unique index on (challenge_id, date): the first
// toggle for a day inserts the row, later toggles update the flag in place.
func (r *PostgresProgressRepository) Upsert(ctx context.Context, p *domain.DailyProgress) (*domain.DailyProgress, error) {
	var stored domain.DailyProgress

	query := `
		INSERT INTO daily_progress (
			id, challenge_id, date, completed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (challenge_id, date) DO UPDATE
		SET completed = EXCLUDED.completed,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, challenge_id, date, completed, created_at, updated_at`

	err := r.db.GetContext(ctx, &stored, query,
		p.ID, p.ChallengeID, p.Date, p.Completed, p.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("upsert failed: %w", err)
	}

	return &stored, nil
}

func (r *PostgresProgressRepository) ListByChallengeID(ctx context.Context, challengeID string, from, to time.Time) ([]*domain.DailyProgress, error) {
	records := []*domain.DailyProgress{}

	query := `
		SELECT * FROM daily_progress
		WHERE challenge_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date ASC`

	err := r.db.SelectContext(ctx, &records, query, challengeID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return records, nil
}

func (r *PostgresProgressRepository) DeleteByChallengeID(ctx context.Context, challengeID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM daily_progress WHERE challenge_id = $1`, challengeID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	return nil
}

func (r *PostgresProgressRepository) DeleteOutsideRange(ctx context.Context, challengeID string, from, to time.Time) error {
	query := `
		DELETE FROM daily_progress
		WHERE challenge_id = $1
		  AND (date < $2 OR date > $3)`

	_, err := r.db.ExecContext(ctx, query, challengeID, from, to)
	if err != nil {
		return fmt.Errorf("range delete failed: %w", err)
	}
	return nil
}

func (r *PostgresProgressRepository) CompletedCountsByUser(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	entries := []*domain.LeaderboardEntry{}

	query := `
		SELECT u.id AS user_id,
		       split_part(u.email, '@', 1) AS display_name,
		       count(*) AS completed_days
		FROM daily_progress p
		JOIN challenges c ON c.id = p.challenge_id
		JOIN users u ON u.id = c.user_id
		WHERE p.completed
		GROUP BY u.id, u.email
		ORDER BY completed_days DESC, display_name ASC
		LIMIT $1`

	err := r.db.SelectContext(ctx, &entries, query, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query error: %w", err)
	}
	return entries, nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
