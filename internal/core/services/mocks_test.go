package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

type MockChallengeRepo struct {
	mock.Mock
}

func (m *MockChallengeRepo) Create(ctx context.Context, c *domain.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeRepo) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepo) Update(ctx context.Context, c *domain.Challenge) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallengeRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) Upsert(ctx context.Context, p *domain.DailyProgress) (*domain.DailyProgress, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyProgress), args.Error(1)
}

func (m *MockProgressRepo) ListByChallengeID(ctx context.Context, challengeID string, from, to time.Time) ([]*domain.DailyProgress, error) {
	args := m.Called(ctx, challengeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DailyProgress), args.Error(1)
}

func (m *MockProgressRepo) DeleteByChallengeID(ctx context.Context, challengeID string) error {
	args := m.Called(ctx, challengeID)
	return args.Error(0)
}

func (m *MockProgressRepo) DeleteOutsideRange(ctx context.Context, challengeID string, from, to time.Time) error {
	args := m.Called(ctx, challengeID, from, to)
	return args.Error(0)
}

func (m *MockProgressRepo) CompletedCountsByUser(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeaderboardEntry), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockIdeaRepo struct {
	mock.Mock
}

func (m *MockIdeaRepo) Search(ctx context.Context, query string, limit int) ([]*domain.ChallengeIdea, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChallengeIdea), args.Error(1)
}
