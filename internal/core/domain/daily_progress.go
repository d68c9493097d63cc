package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DailyProgress is one cell of the calendar: whether the action was done on
// a given day of a challenge. At most one row exists per (challenge, day).
type DailyProgress struct {
	ID          string    `json:"id" db:"id"`
	ChallengeID string    `json:"challenge_id" db:"challenge_id"`
	Date        time.Time `json:"date" db:"date"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewDailyProgress(challengeID string, date time.Time, completed bool) *DailyProgress {
	now := time.Now().UTC()
	return &DailyProgress{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		Date:        DayOnly(date),
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *DailyProgress) Validate() error {
	if strings.TrimSpace(p.ChallengeID) == "" {
		return fmt.Errorf("challenge_id is required")
	}
	if p.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}
