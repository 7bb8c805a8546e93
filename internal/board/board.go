package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

var ErrInvalidIndex = errors.New("fixture index out of range")

// RefreshOutcome reports what a single-row refresh did.
type RefreshOutcome string

const (
	RefreshUpdated RefreshOutcome = "updated"
	RefreshMissed  RefreshOutcome = "missed"
)

// Source runs a fresh aggregation pass over the given competitions.
type Source interface {
	FetchFixtures(ctx context.Context, leagues []string) ([]fixture.Fixture, error)
}

// Config wires a Board. Render receives a snapshot after every change to the list.
type Config struct {
	Source  Source
	Leagues []string
	Render  func([]fixture.Fixture)
	Logger  *logging.Logger
}

// Board owns the displayed fixture list. It is the only writer of that list.
type Board struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
	leagues  []string
	source   Source
	render   func([]fixture.Fixture)
	logger   *logging.Logger
}

func New(cfg Config) *Board {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	render := cfg.Render
	if render == nil {
		render = func([]fixture.Fixture) {}
	}
	leagues := make([]string, len(cfg.Leagues))
	copy(leagues, cfg.Leagues)

	return &Board{
		leagues: leagues,
		source:  cfg.Source,
		render:  render,
		logger:  logger,
	}
}

// Load replaces the whole list with a fresh, display-sorted pass.
func (b *Board) Load(ctx context.Context) error {
	if b.source == nil {
		return fmt.Errorf("board source is not configured")
	}
	fresh, err := b.source.FetchFixtures(ctx, b.leagues)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	sorted := SortForDisplay(fresh)
	b.mu.Lock()
	b.fixtures = sorted
	b.mu.Unlock()

	b.render(b.Fixtures())
	return nil
}

// Fixtures returns a snapshot of the displayed list.
func (b *Board) Fixtures() []fixture.Fixture {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]fixture.Fixture, len(b.fixtures))
	copy(out, b.fixtures)
	return out
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.fixtures)
}

// Refresh re-fetches the competitions and replaces only the row at index with the
// fresh record for the same home/away pair. A pair missing from the fresh pass
// leaves the list untouched and reports RefreshMissed.
func (b *Board) Refresh(ctx context.Context, index int) (RefreshOutcome, error) {
	b.mu.RLock()
	if index < 0 || index >= len(b.fixtures) {
		size := len(b.fixtures)
		b.mu.RUnlock()
		return "", fmt.Errorf("%w: index=%d size=%d", ErrInvalidIndex, index, size)
	}
	target := b.fixtures[index].Pair()
	b.mu.RUnlock()

	if b.source == nil {
		return "", fmt.Errorf("board source is not configured")
	}
	fresh, err := b.source.FetchFixtures(ctx, b.leagues)
	if err != nil {
		return "", fmt.Errorf("refresh fixtures: %w", err)
	}

	replacement, found := findPair(fresh, target)
	if !found {
		b.logger.InfoContext(ctx, "refreshed fixture not found in fresh pass", "home", target.Home, "away", target.Away)
		return RefreshMissed, nil
	}

	b.mu.Lock()
	if index >= len(b.fixtures) || b.fixtures[index].Pair() != target {
		b.mu.Unlock()
		return RefreshMissed, nil
	}
	b.fixtures[index] = replacement
	b.mu.Unlock()

	b.render(b.Fixtures())
	return RefreshUpdated, nil
}

// TotalGoals sums both scores over the displayed list.
func (b *Board) TotalGoals() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, item := range b.fixtures {
		total += item.HomeGoals + item.AwayGoals
	}
	return total
}

func findPair(fixtures []fixture.Fixture, target fixture.TeamPair) (fixture.Fixture, bool) {
	for _, item := range fixtures {
		if item.Pair() == target {
			return item, true
		}
	}
	return fixture.Fixture{}, false
}
