package calendar

import (
	"time"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

// DayNumber maps a date to its 1-based ordinal within the challenge span,
// so the start date is day 1. The second return is false when the date falls
// outside the span; that is an expected outcome, not a failure.
func DayNumber(challenge *domain.Challenge, date time.Time) (int, bool) {
	start := domain.DayOnly(challenge.StartDate)
	end := domain.DayOnly(challenge.EndDate)
	target := domain.DayOnly(date)

	if target.Before(start) || target.After(end) {
		return 0, false
	}

	return daysBetween(start, target) + 1, true
}

// IsEditable reports whether completion for the given date may be toggled:
// the date must not precede the challenge start and must not lie in the
// future relative to now's calendar day.
func IsEditable(date, startDate, now time.Time) bool {
	target := domain.DayOnly(date)
	start := domain.DayOnly(startDate)
	today := domain.DayOnly(now)

	return !target.Before(start) && !target.After(today)
}
