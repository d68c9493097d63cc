package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/thirtydaygen/challenge-engine/internal/adapters/handler/http"
	"github.com/thirtydaygen/challenge-engine/internal/adapters/repository"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

type progressTestEnv struct {
	router    *gin.Engine
	challenge *domain.Challenge
}

func newProgressTestEnv(t *testing.T, now time.Time) *progressTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	challenges := repository.NewInMemoryChallengeRepository()
	progress := repository.NewInMemoryProgressRepository(challenges)

	challenge, err := domain.NewChallenge("user-1", "Cold Showers", "", "", "",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, challenges.Create(t.Context(), challenge))

	clock := func() time.Time { return now }
	svc := services.NewProgressService(progress, challenges, clock)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(testUserMiddleware())
	adapterHTTP.NewProgressHandler(svc).RegisterRoutes(api)

	return &progressTestEnv{
		router:    router,
		challenge: challenge,
	}
}

func TestProgressHandler_Toggle(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	env := newProgressTestEnv(t, now)
	path := "/api/v1/challenges/" + env.challenge.ID + "/progress"

	t.Run("marks a past day complete", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
			"date":      "2024-06-10",
			"completed": true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var result struct {
			DayNumber int `json:"day_number"`
			Progress  struct {
				Completed bool `json:"completed"`
			} `json:"progress"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 10, result.DayNumber)
		assert.True(t, result.Progress.Completed)
	})

	t.Run("toggling the same day twice keeps one record", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
			"date":      "2024-06-10",
			"completed": false,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, env.router, http.MethodGet, path, "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var records []struct {
			Date      string `json:"date"`
			Completed bool   `json:"completed"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.False(t, records[0].Completed)
	})

	t.Run("a day outside the range is unprocessable", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
			"date":      "2024-07-05",
			"completed": true,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("a future day is unprocessable", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
			"date":      "2024-06-20",
			"completed": true,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("a missing date is a bad request", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
			"completed": true,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("another user's challenge is a 404", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-2", gin.H{
			"date":      "2024-06-10",
			"completed": true,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestProgressHandler_List(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	env := newProgressTestEnv(t, now)
	path := "/api/v1/challenges/" + env.challenge.ID + "/progress"

	for _, date := range []string{"2024-06-02", "2024-06-05", "2024-06-12"} {
		rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
			"date":      date,
			"completed": true,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("returns all records sorted by date", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodGet, path, "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var records []struct {
			Date string `json:"date"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 3)
		assert.True(t, records[0].Date < records[1].Date)
	})

	t.Run("applies the from/to window", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodGet, path+"?from=2024-06-04&to=2024-06-10", "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var records []json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		assert.Len(t, records, 1)
	})

	t.Run("rejects a malformed bound", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodGet, path+"?from=June-4", "user-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProgressHandler_Reset(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	env := newProgressTestEnv(t, now)
	path := "/api/v1/challenges/" + env.challenge.ID + "/progress"

	rec := doJSON(t, env.router, http.MethodPut, path, "user-1", gin.H{
		"date":      "2024-06-10",
		"completed": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("other users cannot reset it", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodDelete, path, "user-2", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("the owner wipes every record", func(t *testing.T) {
		rec := doJSON(t, env.router, http.MethodDelete, path, "user-1", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, env.router, http.MethodGet, path, "user-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var records []json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		assert.Empty(t, records)
	})
}
