package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

func TestPostgresProgressRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanupDB(t, db)
	defer cleanupDB(t, db)

	challengeRepo := NewPostgresChallengeRepository(db)
	repo := NewPostgresProgressRepository(db)
	ctx := context.Background()

	insertTestUser(t, db, "pg-user-2", "pg-user-2@example.com")

	challenge, err := domain.NewChallenge("pg-user-2", "Daily Reading", "", "", "",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, challengeRepo.Create(ctx, challenge))

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("upsert keeps one row per day", func(t *testing.T) {
		first, err := repo.Upsert(ctx, domain.NewDailyProgress(challenge.ID, day, true))
		require.NoError(t, err)
		assert.True(t, first.Completed)

		second, err := repo.Upsert(ctx, domain.NewDailyProgress(challenge.ID, day, false))
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.False(t, second.Completed)

		records, err := repo.ListByChallengeID(ctx, challenge.ID, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("list applies the date window", func(t *testing.T) {
		for _, d := range []int{2, 5, 12} {
			_, err := repo.Upsert(ctx, domain.NewDailyProgress(challenge.ID,
				time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC), true))
			require.NoError(t, err)
		}

		records, err := repo.ListByChallengeID(ctx, challenge.ID,
			time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, records, 2, "June 5 and June 10 fall inside the window")
	})

	t.Run("delete outside range prunes stranded rows", func(t *testing.T) {
		require.NoError(t, repo.DeleteOutsideRange(ctx, challenge.ID,
			time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))

		records, err := repo.ListByChallengeID(ctx, challenge.ID, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("completed counts aggregate per user", func(t *testing.T) {
		insertTestUser(t, db, "pg-user-3", "pg-user-3@example.com")

		other, err := domain.NewChallenge("pg-user-3", "Morning Run", "", "", "",
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NoError(t, challengeRepo.Create(ctx, other))

		for _, d := range []int{1, 2, 3, 4} {
			_, err := repo.Upsert(ctx, domain.NewDailyProgress(other.ID,
				time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC), true))
			require.NoError(t, err)
		}

		entries, err := repo.CompletedCountsByUser(ctx, 10)
		require.NoError(t, err)

		require.Len(t, entries, 2)
		assert.Equal(t, "pg-user-3", entries[0].UserID)
		assert.Equal(t, 4, entries[0].CompletedDays)
		assert.Equal(t, "pg-user-3", entries[0].DisplayName, "display name is the email local part")
	})
}
