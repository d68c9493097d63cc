package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

type PostgresChallengeRepository struct {
	db *sqlx.DB
}

func NewPostgresChallengeRepository(db *sqlx.DB) *PostgresChallengeRepository {
	return &PostgresChallengeRepository{db: db}
}

func (r *PostgresChallengeRepository) Create(ctx context.Context, c *domain.Challenge) error {
	query := `
		INSERT INTO challenges (
			id, user_id, title, wish, daily_action, icon,
			start_date, end_date, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :wish, :daily_action, :icon,
			:start_date, :end_date, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrChallengeInvalidUser
		}
		return fmt.Errorf("failed to insert challenge: %w", err)
	}
	return nil
}

func (r *PostgresChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var c domain.Challenge
	query := `SELECT * FROM challenges WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &c, nil
}

func (r *PostgresChallengeRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	challenges := []*domain.Challenge{}

	query := `
		SELECT * FROM challenges
		WHERE user_id = $1
		ORDER BY start_date DESC, created_at DESC`

	err := r.db.SelectContext(ctx, &challenges, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return challenges, nil
}

func (r *PostgresChallengeRepository) Update(ctx context.Context, c *domain.Challenge) error {
	query := `
		UPDATE challenges SET
			title = :title, wish = :wish, daily_action = :daily_action,
			icon = :icon, start_date = :start_date, end_date = :end_date,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

// Delete removes the challenge and its progress rows in one transaction.
// The FK also cascades, but deleting explicitly keeps the behaviour
// independent of schema options.
func (r *PostgresChallengeRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_progress WHERE challenge_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete progress rows: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrChallengeNotFound
	}

	return tx.Commit()
}
