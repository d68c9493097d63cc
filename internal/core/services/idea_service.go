package services

import (
	"context"
	"strings"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

const (
	defaultIdeaLimit = 20
	maxIdeaLimit     = 50
)

type IdeaService struct {
	repo domain.ChallengeIdeaRepository
}

func NewIdeaService(repo domain.ChallengeIdeaRepository) *IdeaService {
	return &IdeaService{repo: repo}
}

// Search queries the seeded idea catalog. A blank query returns no results
// rather than the whole catalog, matching the search box behaviour.
func (s *IdeaService) Search(ctx context.Context, query string, limit int) ([]*domain.ChallengeIdea, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.ChallengeIdea{}, nil
	}

	if limit <= 0 {
		limit = defaultIdeaLimit
	}
	if limit > maxIdeaLimit {
		limit = maxIdeaLimit
	}

	return s.repo.Search(ctx, query, limit)
}
