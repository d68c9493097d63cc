package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	leaderboardCacheTTL     = 1 * time.Minute
)

// LeaderboardService serves ranked completed-day counts. The aggregate
// query touches every progress row, so results are cached in redis for a
// short window; a nil client disables caching.
type LeaderboardService struct {
	progressRepo domain.DailyProgressRepository
	cache        *redis.Client
}

func NewLeaderboardService(progressRepo domain.DailyProgressRepository, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		progressRepo: progressRepo,
		cache:        cache,
	}
}

func (s *LeaderboardService) Get(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	key := cacheKey(limit)

	if s.cache != nil {
		val, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			var entries []*domain.LeaderboardEntry
			if jsonErr := json.Unmarshal([]byte(val), &entries); jsonErr == nil {
				return entries, nil
			}
			log.Printf("[CACHE] Corrupted leaderboard payload, dropping key %s", key)
			s.cache.Del(ctx, key)
		} else if err != redis.Nil {
			log.Printf("[CACHE] Redis read error: %v", err)
		}
	}

	entries, err := s.progressRepo.CompletedCountsByUser(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	if s.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if setErr := s.cache.Set(ctx, key, data, leaderboardCacheTTL).Err(); setErr != nil {
				log.Printf("[CACHE] Redis set error: %v", setErr)
			}
		}
	}

	return entries, nil
}

func cacheKey(limit int) string {
	return fmt.Sprintf("leaderboard:%d", limit)
}
