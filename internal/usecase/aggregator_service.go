package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/id"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/resilience"
)

// AggregationResult is the outcome of one pass. Fixtures are in discovery order
// (competition order, then source order) and carry ids 1..n.
type AggregationResult struct {
	Fixtures  []fixture.Fixture
	Attempted int
	Failed    int
}

// AggregationObserver receives per-competition and per-pass outcomes.
type AggregationObserver interface {
	ObserveCompetition(competitionPath string, fixtures int, err error, elapsed time.Duration)
	ObservePass(attempted, failed, fixtures int, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveCompetition(string, int, error, time.Duration) {}
func (noopObserver) ObservePass(int, int, int, time.Duration)             {}

type AggregatorServiceConfig struct {
	Provider fixture.Provider
	Observer AggregationObserver
	Location *time.Location
	Now      func() time.Time
	Logger   *logging.Logger
}

type AggregatorService struct {
	provider fixture.Provider
	observer AggregationObserver
	location *time.Location
	now      func() time.Time
	logger   *logging.Logger
}

func NewAggregatorService(cfg AggregatorServiceConfig) *AggregatorService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = noopObserver{}
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &AggregatorService{
		provider: cfg.Provider,
		observer: observer,
		location: location,
		now:      now,
		logger:   logger,
	}
}

// Aggregate runs one pass over competitionPaths, sequentially and in order. A failing
// competition contributes zero fixtures; only a cancelled context ends the pass early,
// in which case the fixtures collected so far are returned with the error.
func (s *AggregatorService) Aggregate(ctx context.Context, competitionPaths []string) (AggregationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregatorService.Aggregate",
		attribute.Int("aggregate.competitions", len(competitionPaths)),
	)
	defer span.End()

	if s.provider == nil {
		return AggregationResult{}, fmt.Errorf("%w: fixture provider is not configured", ErrDependencyUnavailable)
	}

	started := time.Now()
	today := s.now().In(s.location)
	seq := id.NewSequence()
	result := AggregationResult{Fixtures: make([]fixture.Fixture, 0, len(competitionPaths)*8)}

	for _, competitionPath := range competitionPaths {
		if err := ctx.Err(); err != nil {
			return s.interrupted(ctx, result, started, err)
		}

		path := strings.Trim(strings.TrimSpace(competitionPath), "/")
		result.Attempted++
		competitionStarted := time.Now()
		items, err := resilience.Contain(ctx, func(ctx context.Context) ([]fixture.Fixture, error) {
			return s.provider.FetchCompetition(ctx, path, today)
		})
		s.observer.ObserveCompetition(path, len(items), err, time.Since(competitionStarted))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return s.interrupted(ctx, result, started, ctxErr)
			}
			result.Failed++
			if errors.Is(err, resilience.ErrPanicked) {
				s.logger.ErrorContext(ctx, "competition pipeline panicked", "competition", path, "error", err)
			} else {
				s.logger.WarnContext(ctx, "competition fetch failed, continuing with remaining competitions", "competition", path, "error", err)
			}
			continue
		}

		for _, item := range items {
			item.ID = seq.Next()
			result.Fixtures = append(result.Fixtures, item)
		}
	}

	s.observer.ObservePass(result.Attempted, result.Failed, len(result.Fixtures), time.Since(started))
	span.SetAttributes(
		attribute.Int("aggregate.fixtures", len(result.Fixtures)),
		attribute.Int("aggregate.failed", result.Failed),
	)
	s.logger.InfoContext(ctx, "aggregation pass completed",
		"attempted", result.Attempted,
		"failed", result.Failed,
		"fixtures", len(result.Fixtures),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}

func (s *AggregatorService) interrupted(ctx context.Context, result AggregationResult, started time.Time, cause error) (AggregationResult, error) {
	s.observer.ObservePass(result.Attempted, result.Failed, len(result.Fixtures), time.Since(started))
	err := fmt.Errorf("%w: aggregation interrupted: %w", ErrDependencyUnavailable, cause)
	s.logger.WarnContext(ctx, "aggregation pass interrupted",
		"attempted", result.Attempted,
		"fixtures", len(result.Fixtures),
		"error", cause,
	)
	return result, err
}
