package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
	fixturemock "github.com/riskibarqy/livescore-aggregator/internal/mocks/domain/fixture"
	leaguemock "github.com/riskibarqy/livescore-aggregator/internal/mocks/domain/league"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/cache"
)

func TestFixtureService_ListFixtures_ResolvesCatalogIDsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), "trace_id", "trace-123")
	leagueRepo := leaguemock.NewRepository(t)
	provider := fixturemock.NewProvider(t)
	service := NewFixtureService(FixtureServiceConfig{
		Leagues:    leagueRepo,
		Aggregator: NewAggregatorService(AggregatorServiceConfig{Provider: provider}),
	})

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "39").
		Return(league.League{ID: "39", Name: "Premier League", Path: "england/premier-league"}, true, nil).
		Once()
	provider.
		On("FetchCompetition", mock.Anything, "england/premier-league", mock.Anything).
		Return(matchesOf("PREMIER LEAGUE", "Arsenal", "Chelsea"), nil).
		Once()
	provider.
		On("FetchCompetition", mock.Anything, "europe/europa-league", mock.Anything).
		Return(matchesOf("EUROPA LEAGUE", "Roma", "Ajax"), nil).
		Once()

	got, err := service.ListFixtures(ctx, FixtureQuery{Leagues: []string{" 39 ", "europe/europa-league", ""}})
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected fixture count: got=%d want=2", len(got))
	}
	if got[1].ID != 2 || got[1].HomeTeam != "Roma" {
		t.Fatalf("unexpected second fixture: %+v", got[1])
	}
}

func TestFixtureService_ListFixtures_UnknownLeagueIDUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	provider := fixturemock.NewProvider(t)
	service := NewFixtureService(FixtureServiceConfig{
		Leagues:    leagueRepo,
		Aggregator: NewAggregatorService(AggregatorServiceConfig{Provider: provider}),
	})

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), "999").
		Return(league.League{}, false, nil).
		Once()

	_, err := service.ListFixtures(ctx, FixtureQuery{Leagues: []string{"999"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_ListFixtures_RequiresLeagues(t *testing.T) {
	t.Parallel()

	service := NewFixtureService(FixtureServiceConfig{
		Aggregator: NewAggregatorService(AggregatorServiceConfig{Provider: fixturemock.NewProvider(t)}),
	})

	for _, leagues := range [][]string{nil, {" ", "/"}} {
		if _, err := service.ListFixtures(context.Background(), FixtureQuery{Leagues: leagues}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %v, got %v", leagues, err)
		}
	}
}

func TestFixtureService_ListFixtures_CachesUntilBypassed(t *testing.T) {
	t.Parallel()

	provider := fixturemock.NewProvider(t)
	service := NewFixtureService(FixtureServiceConfig{
		Aggregator: NewAggregatorService(AggregatorServiceConfig{Provider: provider}),
		Cache:      cache.NewStore[[]fixture.Fixture](time.Minute),
	})

	provider.
		On("FetchCompetition", mock.Anything, "spain/laliga", mock.Anything).
		Return(matchesOf("LALIGA", "Real Madrid", "Getafe"), nil).
		Twice()

	query := FixtureQuery{Leagues: []string{"spain/laliga"}}
	for i := 0; i < 3; i++ {
		if _, err := service.ListFixtures(context.Background(), query); err != nil {
			t.Fatalf("list fixtures: %v", err)
		}
	}

	query.BypassCache = true
	got, err := service.ListFixtures(context.Background(), query)
	if err != nil {
		t.Fatalf("list fixtures bypassing cache: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected fixture count: %d", len(got))
	}
}

func TestLeagueService_ListLeaguesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	service := NewLeagueService(leagueRepo)

	leagueRepo.
		On("List", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return([]league.League{
			{ID: "39", Name: "Premier League", Country: "England", Path: "england/premier-league"},
			{ID: "140", Name: "La Liga", Country: "Spain", Path: "spain/laliga"},
		}, nil).
		Twice()

	got, err := service.ListLeagues(ctx, "")
	if err != nil {
		t.Fatalf("list leagues: %v", err)
	}
	if len(got) != 2 || got[0].ID != "39" {
		t.Fatalf("unexpected leagues: %+v", got)
	}

	got, err = service.ListLeagues(ctx, " spain ")
	if err != nil {
		t.Fatalf("list leagues by country: %v", err)
	}
	if len(got) != 1 || got[0].ID != "140" {
		t.Fatalf("unexpected filtered leagues: %+v", got)
	}
}
