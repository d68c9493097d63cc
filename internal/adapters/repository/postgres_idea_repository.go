package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

type PostgresIdeaRepository struct {
	db *sqlx.DB
}

func NewPostgresIdeaRepository(db *sqlx.DB) *PostgresIdeaRepository {
	return &PostgresIdeaRepository{db: db}
}

// Search runs postgres full-text search over the catalog, ranked by
// relevance, with a trigram-free ILIKE fallback so short or misspelled
// queries still return something useful.
func (r *PostgresIdeaRepository) Search(ctx context.Context, query string, limit int) ([]*domain.ChallengeIdea, error) {
	ideas := []*domain.ChallengeIdea{}

	ftsQuery := `
		SELECT id, title, description, wish, daily_action, source_name, source_link
		FROM challenge_ideas
		WHERE search_vector @@ websearch_to_tsquery('english', $1)
		ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', $1)) DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &ideas, ftsQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("idea search query error: %w", err)
	}

	if len(ideas) > 0 {
		return ideas, nil
	}

	likeQuery := `
		SELECT id, title, description, wish, daily_action, source_name, source_link
		FROM challenge_ideas
		WHERE title ILIKE '%' || $1 || '%'
		   OR daily_action ILIKE '%' || $1 || '%'
		ORDER BY title ASC
		LIMIT $2`

	err = r.db.SelectContext(ctx, &ideas, likeQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("idea fallback query error: %w", err)
	}

	return ideas, nil
}
