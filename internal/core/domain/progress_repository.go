package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrProgressNotFound = errors.New("daily progress not found")
	ErrProgressConflict = errors.New("daily progress already recorded for that day")
)

type DailyProgressRepository interface {
	// Upsert creates the record for (challenge_id, date) or updates its
	// completed flag if one already exists. The returned record reflects
	// the stored row.
	Upsert(ctx context.Context, progress *DailyProgress) (*DailyProgress, error)

	// ListByChallengeID retrieves records for a challenge within a date
	// range, both bounds inclusive. Zero bounds mean unbounded.
	ListByChallengeID(ctx context.Context, challengeID string, from, to time.Time) ([]*DailyProgress, error)

	// DeleteByChallengeID removes every record belonging to a challenge.
	DeleteByChallengeID(ctx context.Context, challengeID string) error

	// DeleteOutsideRange removes records whose date falls outside
	// [from, to]. Used when a challenge's date range is edited.
	DeleteOutsideRange(ctx context.Context, challengeID string, from, to time.Time) error

	// CompletedCountsByUser aggregates completed-day counts per user,
	// feeding the leaderboard.
	CompletedCountsByUser(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}
