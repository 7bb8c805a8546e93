package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
)

// LeagueRepository serves the league picker catalog. The catalog is loaded once
// at startup and never mutated, so reads need no locking.
type LeagueRepository struct {
	ordered []league.League
	byID    map[string]int
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	ordered := slices.Clone(leagues)
	byID := make(map[string]int, len(ordered))
	for i, item := range ordered {
		if _, exists := byID[item.ID]; exists {
			continue
		}
		byID[item.ID] = i
	}

	return &LeagueRepository{ordered: ordered, byID: byID}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	return slices.Clone(r.ordered), nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	idx, ok := r.byID[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return r.ordered[idx], true, nil
}
