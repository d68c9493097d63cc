// Package calendar holds the pure date arithmetic behind challenge views:
// the week-aligned grid, progress metrics and day resolution. Functions here
// do no I/O and take the current time as an argument where it matters.
package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

const dayKeyLayout = "2006-01-02"

// GridCell is one slot of the rendered calendar. Padding cells exist only to
// align the grid to whole weeks and never carry progress. ProgressID is a
// fresh id when no persisted record exists for the day; it is not stable
// across rebuilds.
type GridCell struct {
	Date           time.Time             `json:"date"`
	IsPadding      bool                  `json:"is_padding"`
	Progress       *domain.DailyProgress `json:"progress,omitempty"`
	LeftCompleted  bool                  `json:"left_completed"`
	RightCompleted bool                  `json:"right_completed"`
	ChallengeID    string                `json:"challenge_id"`
	ProgressID     string                `json:"progress_id"`
}

// BuildGrid expands a challenge's date range into an ordered, week-aligned
// sequence of cells. The week starts on Sunday, so the leading padding count
// equals the start date's weekday. Records for other challenges are ignored.
//
// A range where start is after end yields an empty grid; validating the
// range is the caller's job.
func BuildGrid(challenge *domain.Challenge, records []*domain.DailyProgress) []GridCell {
	start := domain.DayOnly(challenge.StartDate)
	end := domain.DayOnly(challenge.EndDate)

	if start.After(end) {
		return nil
	}

	byDay := make(map[string]*domain.DailyProgress, len(records))
	for _, r := range records {
		if r.ChallengeID != challenge.ID {
			continue
		}
		byDay[domain.DayOnly(r.Date).Format(dayKeyLayout)] = r
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	paddingBefore := int(start.Weekday())
	weekCount := (totalDays + paddingBefore + 6) / 7
	paddingAfter := weekCount*7 - (totalDays + paddingBefore)

	cells := make([]GridCell, 0, weekCount*7)

	for i := 0; i < paddingBefore; i++ {
		cells = append(cells, GridCell{
			Date:        start.AddDate(0, 0, i-paddingBefore),
			IsPadding:   true,
			ChallengeID: challenge.ID,
			ProgressID:  uuid.NewString(),
		})
	}

	for i := 0; i < totalDays; i++ {
		date := start.AddDate(0, 0, i)
		cell := GridCell{
			Date:        date,
			ChallengeID: challenge.ID,
		}
		if progress, ok := byDay[date.Format(dayKeyLayout)]; ok {
			cell.Progress = progress
			cell.ProgressID = progress.ID
		} else {
			cell.ProgressID = uuid.NewString()
		}
		cells = append(cells, cell)
	}

	for i := 0; i < paddingAfter; i++ {
		cells = append(cells, GridCell{
			Date:        end.AddDate(0, 0, i+1),
			IsPadding:   true,
			ChallengeID: challenge.ID,
			ProgressID:  uuid.NewString(),
		})
	}

	// Streak connectors: a non-padding cell points at its completed
	// non-padding neighbours. Padding cells keep the zero value.
	for i := range cells {
		if cells[i].IsPadding {
			continue
		}
		if i > 0 {
			cells[i].LeftCompleted = isCompletedCell(cells[i-1])
		}
		if i < len(cells)-1 {
			cells[i].RightCompleted = isCompletedCell(cells[i+1])
		}
	}

	return cells
}

func isCompletedCell(c GridCell) bool {
	return !c.IsPadding && c.Progress != nil && c.Progress.Completed
}
