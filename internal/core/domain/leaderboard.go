package domain

// LeaderboardEntry is a derived row: how many days a user has marked
// completed across all their challenges. Rank is assigned after sorting,
// 1-based, ties broken by display name for a stable order.
type LeaderboardEntry struct {
	UserID        string `json:"user_id" db:"user_id"`
	DisplayName   string `json:"display_name" db:"display_name"`
	CompletedDays int    `json:"completed_days" db:"completed_days"`
	Rank          int    `json:"rank" db:"-"`
}
