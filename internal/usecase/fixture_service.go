package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/cache"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

const (
	fixturesCachePrefix = "fixtures:"
	maxQueryLeagues     = 20
)

// FixtureQuery selects competitions by catalog id ("39") or provider path
// ("england/premier-league").
type FixtureQuery struct {
	Leagues     []string
	BypassCache bool
}

type FixtureServiceConfig struct {
	Leagues    league.Repository
	Aggregator *AggregatorService
	Cache      *cache.Store[[]fixture.Fixture]
	Logger     *logging.Logger
}

type FixtureService struct {
	leagueRepo league.Repository
	aggregator *AggregatorService
	cache      *cache.Store[[]fixture.Fixture]
	logger     *logging.Logger
}

func NewFixtureService(cfg FixtureServiceConfig) *FixtureService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{
		leagueRepo: cfg.Leagues,
		aggregator: cfg.Aggregator,
		cache:      cfg.Cache,
		logger:     logger,
	}
}

func (s *FixtureService) ListFixtures(ctx context.Context, query FixtureQuery) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListFixtures",
		attribute.Int("fixtures.leagues", len(query.Leagues)),
		attribute.Bool("fixtures.bypass_cache", query.BypassCache),
	)
	defer span.End()

	paths, err := s.ResolveCompetitions(ctx, query.Leagues)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	load := func(ctx context.Context) ([]fixture.Fixture, error) {
		result, err := s.aggregator.Aggregate(ctx, paths)
		if err != nil {
			return nil, err
		}
		return result.Fixtures, nil
	}

	var fixtures []fixture.Fixture
	switch {
	case s.cache == nil:
		fixtures, err = load(ctx)
	case query.BypassCache:
		fixtures, err = load(ctx)
		if err == nil {
			s.cache.Set(ctx, fixturesCacheKey(paths), fixtures)
		}
	default:
		fixtures, err = s.cache.GetOrLoad(ctx, fixturesCacheKey(paths), load)
	}
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	return fixtures, nil
}

// ResolveCompetitions maps query tokens to provider paths, keeping their order.
// Duplicates are kept; each one is fetched again.
func (s *FixtureService) ResolveCompetitions(ctx context.Context, tokens []string) ([]string, error) {
	paths := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.Trim(strings.TrimSpace(token), "/")
		if token == "" {
			continue
		}
		if !isCatalogID(token) {
			paths = append(paths, token)
			continue
		}

		if s.leagueRepo == nil {
			return nil, fmt.Errorf("%w: league catalog is not configured", ErrInvalidInput)
		}
		item, exists, err := s.leagueRepo.GetByID(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("get league: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: unknown league id %s", ErrInvalidInput, token)
		}
		paths = append(paths, item.Path)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: at least one league is required", ErrInvalidInput)
	}
	if len(paths) > maxQueryLeagues {
		return nil, fmt.Errorf("%w: at most %d leagues per request", ErrInvalidInput, maxQueryLeagues)
	}

	return paths, nil
}

// Warm refreshes the cached listing for leagues.
func (s *FixtureService) Warm(ctx context.Context, leagues []string) (int, error) {
	fixtures, err := s.ListFixtures(ctx, FixtureQuery{Leagues: leagues, BypassCache: true})
	if err != nil {
		return 0, err
	}
	return len(fixtures), nil
}

func fixturesCacheKey(paths []string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(fixturesCachePrefix)
	for i, path := range paths {
		if i > 0 {
			_ = buf.WriteByte(',')
		}
		_, _ = buf.WriteString(path)
	}
	return buf.String()
}

func isCatalogID(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return token != ""
}
