package services

import (
	"context"
	"time"

	"github.com/thirtydaygen/challenge-engine/internal/core/calendar"
	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

// Clock supplies the current time so date-sensitive calculations stay
// testable. Services fall back to time.Now when given nil.
type Clock func() time.Time

type ChallengeService struct {
	repo         domain.ChallengeRepository
	progressRepo domain.DailyProgressRepository
	now          Clock
}

func NewChallengeService(repo domain.ChallengeRepository, progressRepo domain.DailyProgressRepository, now Clock) *ChallengeService {
	if now == nil {
		now = time.Now
	}
	return &ChallengeService{
		repo:         repo,
		progressRepo: progressRepo,
		now:          now,
	}
}

type CreateChallengeInput struct {
	UserID      string
	Title       string
	Wish        string
	DailyAction string
	Icon        string
	StartDate   time.Time
	EndDate     time.Time
}

type UpdateChallengeInput struct {
	ID          string
	UserID      string
	Title       string
	Wish        string
	DailyAction string
	Icon        string
	StartDate   time.Time
	EndDate     time.Time
}

// ChallengeView bundles a challenge with everything the calendar screen
// renders: the week-aligned grid and the two summary fractions.
type ChallengeView struct {
	Challenge       *domain.Challenge   `json:"challenge"`
	Grid            []calendar.GridCell `json:"grid"`
	CompletionRate  float64             `json:"completion_rate"`
	ElapsedFraction float64             `json:"elapsed_fraction"`
}

func (s *ChallengeService) Create(ctx context.Context, input CreateChallengeInput) (*domain.Challenge, error) {
	challenge, err := domain.NewChallenge(
		input.UserID,
		input.Title,
		input.Wish,
		input.DailyAction,
		input.Icon,
		input.StartDate,
		input.EndDate,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, challenge); err != nil {
		return nil, err
	}

	return challenge, nil
}

func (s *ChallengeService) ListByUserID(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetView loads a challenge with its progress records and derives the grid
// and metrics in one pass.
func (s *ChallengeService) GetView(ctx context.Context, id, userID string) (*ChallengeView, error) {
	challenge, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.progressRepo.ListByChallengeID(ctx, id, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	now := s.now()

	return &ChallengeView{
		Challenge:       challenge,
		Grid:            calendar.BuildGrid(challenge, records),
		CompletionRate:  calendar.CompletionRate(challenge, records, now),
		ElapsedFraction: calendar.ElapsedFraction(challenge, now),
	}, nil
}

func (s *ChallengeService) Update(ctx context.Context, input UpdateChallengeInput) (*domain.Challenge, error) {
	challenge, err := s.getOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	title := mergeString(input.Title, challenge.Title)
	wish := mergeString(input.Wish, challenge.Wish)
	action := mergeString(input.DailyAction, challenge.DailyAction)
	icon := mergeString(input.Icon, challenge.Icon)

	start := challenge.StartDate
	if !input.StartDate.IsZero() {
		start = input.StartDate
	}
	end := challenge.EndDate
	if !input.EndDate.IsZero() {
		end = input.EndDate
	}

	rangeChanged := !domain.DayOnly(start).Equal(challenge.StartDate) ||
		!domain.DayOnly(end).Equal(challenge.EndDate)

	if err := challenge.Update(title, wish, action, icon, start, end); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, challenge); err != nil {
		return nil, err
	}

	// Shrinking the range strands progress rows outside it; drop them so
	// the one-row-per-day invariant keeps matching the visible calendar.
	if rangeChanged {
		if err := s.progressRepo.DeleteOutsideRange(ctx, challenge.ID, challenge.StartDate, challenge.EndDate); err != nil {
			return nil, err
		}
	}

	return challenge, nil
}

func (s *ChallengeService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *ChallengeService) getOwned(ctx context.Context, id, userID string) (*domain.Challenge, error) {
	challenge, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if challenge.UserID != userID {
		return nil, domain.ErrChallengeNotFound
	}

	return challenge, nil
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}
