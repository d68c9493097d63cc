package services

import (
	"context"
	"errors"
	"time"

	"github.com/thirtydaygen/challenge-engine/internal/core/calendar"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

var (
	ErrDateNotEditable = errors.New("date is not editable")
	ErrDateOutOfRange  = errors.New("date is outside the challenge range")
)

type ProgressService struct {
	repo          domain.DailyProgressRepository
	challengeRepo domain.ChallengeRepository
	now           Clock
}

func NewProgressService(repo domain.DailyProgressRepository, challengeRepo domain.ChallengeRepository, now Clock) *ProgressService {
	if now == nil {
		now = time.Now
	}
	return &ProgressService{
		repo:          repo,
		challengeRepo: challengeRepo,
		now:           now,
	}
}

type ToggleProgressInput struct {
	ChallengeID string
	UserID      string
	Date        time.Time
	Completed   bool
}

// ToggleResult reports what was written plus which ordinal day of the
// challenge it was, for the confirmation the UI shows.
type ToggleResult struct {
	Progress  *domain.DailyProgress `json:"progress"`
	DayNumber int                   `json:"day_number"`
}

// Toggle upserts the completion record for one day. Days before the
// challenge start or after today are rejected, never written.
func (s *ProgressService) Toggle(ctx context.Context, input ToggleProgressInput) (*ToggleResult, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, input.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge.UserID != input.UserID {
		return nil, domain.ErrChallengeNotFound
	}

	dayNumber, ok := calendar.DayNumber(challenge, input.Date)
	if !ok {
		return nil, ErrDateOutOfRange
	}

	if !calendar.IsEditable(input.Date, challenge.StartDate, s.now()) {
		return nil, ErrDateNotEditable
	}

	progress := domain.NewDailyProgress(input.ChallengeID, input.Date, input.Completed)
	if err := progress.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, progress)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{
		Progress:  stored,
		DayNumber: dayNumber,
	}, nil
}

func (s *ProgressService) ListByChallengeID(ctx context.Context, challengeID, userID string, from, to time.Time) ([]*domain.DailyProgress, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.UserID != userID {
		return nil, domain.ErrChallengeNotFound
	}

	return s.repo.ListByChallengeID(ctx, challengeID, from, to)
}

// Reset wipes every progress record of a challenge. Exposed for the dev
// tooling dialog; destructive but scoped to the owner's challenge.
func (s *ProgressService) Reset(ctx context.Context, challengeID, userID string) error {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if challenge.UserID != userID {
		return domain.ErrChallengeNotFound
	}

	return s.repo.DeleteByChallengeID(ctx, challengeID)
}
