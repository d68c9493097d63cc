package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrChallengeInvalidUser  = errors.New("invalid user id")
	ErrChallengeTitleEmpty   = errors.New("challenge title cannot be empty")
	ErrChallengeTitleTooLong = errors.New("challenge title is too long")
	ErrChallengeWishTooLong  = errors.New("challenge wish is too long")
	ErrActionTooLong         = errors.New("daily action is too long")
	ErrInvalidIcon           = errors.New("icon must be a short emoji")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")
)

const (
	DefaultIcon     = "🔥"
	DefaultSpanDays = 30

	MaxTitleLen  = 100
	MaxWishLen   = 500
	MaxActionLen = 500

	// Emoji with modifiers span several runes, but anything longer than
	// this is text, not an icon.
	maxIconRuneCount = 8
)

// Challenge is a fixed run of consecutive days with one action to perform
// daily. The range is inclusive on both ends.
type Challenge struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Wish        string    `json:"wish" db:"wish"`
	DailyAction string    `json:"daily_action" db:"daily_action"`
	Icon        string    `json:"icon" db:"icon"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// DayOnly truncates a timestamp to midnight UTC. Every date stored or
// compared in this package goes through it, so "same day" never depends on
// the time component or the zone of the input.
func DayOnly(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// NewChallenge builds a validated challenge. A zero start date means today;
// a zero end date closes the default 30-day span.
func NewChallenge(userID, title, wish, dailyAction, icon string, startDate, endDate time.Time) (*Challenge, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrChallengeInvalidUser
	}

	title = strings.TrimSpace(title)
	wish = strings.TrimSpace(wish)
	dailyAction = strings.TrimSpace(dailyAction)
	icon = strings.TrimSpace(icon)

	if startDate.IsZero() {
		startDate = time.Now()
	}
	startDate = DayOnly(startDate)

	if endDate.IsZero() {
		endDate = startDate.AddDate(0, 0, DefaultSpanDays-1)
	}
	endDate = DayOnly(endDate)

	if icon == "" {
		icon = DefaultIcon
	}

	if err := validateChallengeFields(title, wish, dailyAction, icon, startDate, endDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Challenge{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Wish:        wish,
		DailyAction: dailyAction,
		Icon:        icon,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies the edit only if every field validates; a failed update
// leaves the challenge untouched.
func (c *Challenge) Update(title, wish, dailyAction, icon string, startDate, endDate time.Time) error {
	title = strings.TrimSpace(title)
	wish = strings.TrimSpace(wish)
	dailyAction = strings.TrimSpace(dailyAction)
	icon = strings.TrimSpace(icon)

	startDate = DayOnly(startDate)
	endDate = DayOnly(endDate)

	if icon == "" {
		icon = DefaultIcon
	}

	if err := validateChallengeFields(title, wish, dailyAction, icon, startDate, endDate); err != nil {
		return err
	}

	c.Title = title
	c.Wish = wish
	c.DailyAction = dailyAction
	c.Icon = icon
	c.StartDate = startDate
	c.EndDate = endDate
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// TotalDays is the inclusive length of the range.
func (c *Challenge) TotalDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}

func validateChallengeFields(title, wish, dailyAction, icon string, startDate, endDate time.Time) error {
	if title == "" {
		return ErrChallengeTitleEmpty
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ErrChallengeTitleTooLong
	}
	if utf8.RuneCountInString(wish) > MaxWishLen {
		return ErrChallengeWishTooLong
	}
	if utf8.RuneCountInString(dailyAction) > MaxActionLen {
		return ErrActionTooLong
	}
	if utf8.RuneCountInString(icon) > maxIconRuneCount {
		return ErrInvalidIcon
	}
	if startDate.After(endDate) {
		return ErrInvalidDateRange
	}
	return nil
}
