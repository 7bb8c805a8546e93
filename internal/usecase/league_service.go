package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
)

// LeagueService serves the league picker catalog.
type LeagueService struct {
	leagueRepo league.Repository
}

func NewLeagueService(leagueRepo league.Repository) *LeagueService {
	return &LeagueService{leagueRepo: leagueRepo}
}

// ListLeagues returns the catalog in configured order. A non-empty country keeps
// only leagues of that country, compared case-insensitively.
func (s *LeagueService) ListLeagues(ctx context.Context, country string) ([]league.League, error) {
	country = strings.TrimSpace(country)
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues", attribute.String("league.country", country))
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	if country == "" {
		return leagues, nil
	}

	out := make([]league.League, 0, len(leagues))
	for _, item := range leagues {
		if strings.EqualFold(item.Country, country) {
			out = append(out, item)
		}
	}
	span.SetAttributes(attribute.Int("league.count", len(out)))
	return out, nil
}
