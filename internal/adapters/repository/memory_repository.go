package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

// In-memory repositories back the handler tests and local runs without a
// database. They hold the same invariants the postgres versions enforce,
// including one progress row per (challenge_id, date).

type InMemoryChallengeRepository struct {
	store map[string]*domain.Challenge

	mu sync.RWMutex
}

func NewInMemoryChallengeRepository() *InMemoryChallengeRepository {
	return &InMemoryChallengeRepository{
		store: make(map[string]*domain.Challenge),
	}
}

func (r *InMemoryChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[challenge.ID] = challenge
	return nil
}

func (r *InMemoryChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	challenge, ok := r.store[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	return challenge, nil
}

func (r *InMemoryChallengeRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var challenges []*domain.Challenge
	for _, c := range r.store {
		if c.UserID == userID {
			challenges = append(challenges, c)
		}
	}

	sort.Slice(challenges, func(i, j int) bool {
		return challenges[i].StartDate.After(challenges[j].StartDate)
	})

	return challenges, nil
}

func (r *InMemoryChallengeRepository) Update(ctx context.Context, challenge *domain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[challenge.ID]; !ok {
		return domain.ErrChallengeNotFound
	}
	r.store[challenge.ID] = challenge
	return nil
}

func (r *InMemoryChallengeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrChallengeNotFound
	}
	delete(r.store, id)
	return nil
}

type InMemoryProgressRepository struct {
	store      map[string]*domain.DailyProgress // keyed by challengeID|YYYY-MM-DD
	challenges *InMemoryChallengeRepository

	mu sync.RWMutex
}

// NewInMemoryProgressRepository links back to the challenge store so the
// leaderboard aggregate can attribute records to owners; challenges may be
// nil when the aggregate is not exercised.
func NewInMemoryProgressRepository(challenges *InMemoryChallengeRepository) *InMemoryProgressRepository {
	return &InMemoryProgressRepository{
		store:      make(map[string]*domain.DailyProgress),
		challenges: challenges,
	}
}

func progressKey(challengeID string, date time.Time) string {
	return challengeID + "|" + domain.DayOnly(date).Format("2006-01-02")
}

func (r *InMemoryProgressRepository) Upsert(ctx context.Context, p *domain.DailyProgress) (*domain.DailyProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey(p.ChallengeID, p.Date)

	if existing, ok := r.store[key]; ok {
		existing.Completed = p.Completed
		existing.UpdatedAt = time.Now().UTC()
		return existing, nil
	}

	r.store[key] = p
	return p, nil
}

func (r *InMemoryProgressRepository) ListByChallengeID(ctx context.Context, challengeID string, from, to time.Time) ([]*domain.DailyProgress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*domain.DailyProgress
	for _, p := range r.store {
		if p.ChallengeID != challengeID {
			continue
		}
		if !from.IsZero() && p.Date.Before(domain.DayOnly(from)) {
			continue
		}
		if !to.IsZero() && p.Date.After(domain.DayOnly(to)) {
			continue
		}
		records = append(records, p)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, nil
}

func (r *InMemoryProgressRepository) DeleteByChallengeID(ctx context.Context, challengeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.store {
		if p.ChallengeID == challengeID {
			delete(r.store, key)
		}
	}
	return nil
}

func (r *InMemoryProgressRepository) DeleteOutsideRange(ctx context.Context, challengeID string, from, to time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := domain.DayOnly(from)
	end := domain.DayOnly(to)

	for key, p := range r.store {
		if p.ChallengeID != challengeID {
			continue
		}
		if p.Date.Before(start) || p.Date.After(end) {
			delete(r.store, key)
		}
	}
	return nil
}

func (r *InMemoryProgressRepository) CompletedCountsByUser(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range r.store {
		if !p.Completed {
			continue
		}
		owner := p.ChallengeID
		if r.challenges != nil {
			if c, err := r.challenges.GetByID(ctx, p.ChallengeID); err == nil {
				owner = c.UserID
			}
		}
		counts[owner]++
	}

	entries := make([]*domain.LeaderboardEntry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, &domain.LeaderboardEntry{
			UserID:        id,
			DisplayName:   id,
			CompletedDays: n,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CompletedDays != entries[j].CompletedDays {
			return entries[i].CompletedDays > entries[j].CompletedDays
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
