package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

type PostgresSubscriptionRepository struct {
	db *sqlx.DB
}

func NewPostgresSubscriptionRepository(db *sqlx.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

func (r *PostgresSubscriptionRepository) Save(ctx context.Context, sub *domain.PushSubscription) error {
	query := `
		INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, created_at)
		VALUES (:id, :user_id, :endpoint, :p256dh, :auth, :created_at)
		ON CONFLICT (endpoint) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    p256dh = EXCLUDED.p256dh,
		    auth = EXCLUDED.auth`

	_, err := r.db.NamedExecContext(ctx, query, sub)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *PostgresSubscriptionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.PushSubscription, error) {
	subs := []*domain.PushSubscription{}

	err := r.db.SelectContext(ctx, &subs,
		`SELECT * FROM push_subscriptions WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return subs, nil
}

func (r *PostgresSubscriptionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM push_subscriptions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *PostgresSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	return nil
}

// ListForReminder finds subscriptions of users with a challenge active on
// the given day and no completed record for it.
func (r *PostgresSubscriptionRepository) ListForReminder(ctx context.Context, day time.Time) ([]*domain.PushSubscription, error) {
	subs := []*domain.PushSubscription{}

	query := `
		SELECT DISTINCT s.id, s.user_id, s.endpoint, s.p256dh, s.auth, s.created_at
		FROM push_subscriptions s
		JOIN challenges c ON c.user_id = s.user_id
		WHERE c.start_date <= $1
		  AND c.end_date >= $1
		  AND NOT EXISTS (
			SELECT 1 FROM daily_progress p
			WHERE p.challenge_id = c.id
			  AND p.date = $1
			  AND p.completed
		  )`

	err := r.db.SelectContext(ctx, &subs, query, day)
	if err != nil {
		return nil, fmt.Errorf("reminder query error: %w", err)
	}
	return subs, nil
}
