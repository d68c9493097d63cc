package calendar

import (
	"time"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

// CompletionRate is the fraction of elapsed days marked completed, in [0, 1].
// Days are counted from the start date up to whichever comes first of now
// and the end date. A challenge that has not started yet scores 0. The
// records are assumed already scoped to the challenge.
func CompletionRate(challenge *domain.Challenge, records []*domain.DailyProgress, now time.Time) float64 {
	today := domain.DayOnly(now)
	start := domain.DayOnly(challenge.StartDate)
	end := domain.DayOnly(challenge.EndDate)

	if start.After(today) {
		return 0
	}

	effectiveEnd := end
	if today.Before(end) {
		effectiveEnd = today
	}

	daysElapsed := daysBetween(start, effectiveEnd) + 1
	if daysElapsed < 1 {
		daysElapsed = 1
	}

	completed := 0
	for _, r := range records {
		if r.Completed {
			completed++
		}
	}

	rate := float64(completed) / float64(daysElapsed)
	if rate > 1 {
		return 1
	}
	return rate
}

// ElapsedFraction is the share of the challenge's total duration that has
// passed, clamped to [0, 1]. Day 1 counts as elapsed from the start date
// itself, so a 30-day challenge reads 1/30 on its first day.
func ElapsedFraction(challenge *domain.Challenge, now time.Time) float64 {
	start := domain.DayOnly(challenge.StartDate)
	end := domain.DayOnly(challenge.EndDate)
	today := domain.DayOnly(now)

	totalDays := daysBetween(start, end) + 1
	if totalDays < 1 {
		totalDays = 1
	}

	daysElapsed := daysBetween(start, today) + 1

	fraction := float64(daysElapsed) / float64(totalDays)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// daysBetween counts whole days from a to b. Both inputs are UTC midnights,
// so the division is exact. Negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
