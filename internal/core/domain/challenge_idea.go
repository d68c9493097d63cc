package domain

import "context"

// ChallengeIdea is a read-only catalog entry users can search when creating
// a challenge. Ideas are seeded out of band and never mutated by the API.
type ChallengeIdea struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Wish        string `json:"wish" db:"wish"`
	DailyAction string `json:"daily_action" db:"daily_action"`
	SourceName  string `json:"source_name" db:"source_name"`
	SourceLink  string `json:"source_link" db:"source_link"`
}

type ChallengeIdeaRepository interface {
	Search(ctx context.Context, query string, limit int) ([]*ChallengeIdea, error)
}
