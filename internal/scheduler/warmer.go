package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

// Target runs one aggregation pass and stores it in the response cache.
type Target interface {
	Warm(ctx context.Context, leagues []string) (int, error)
}

type Sink interface {
	WarmupCompleted(fixtures int, err error)
}

type Config struct {
	Schedule string
	Leagues  []string
	Location *time.Location
	Target   Target
	Sink     Sink
	Logger   *logging.Logger
}

// Warmer refreshes the fixtures cache on a cron schedule so dashboard reads
// rarely wait on the provider.
type Warmer struct {
	schedule cron.Schedule
	leagues  []string
	location *time.Location
	target   Target
	sink     Sink
	logger   *logging.Logger
	clock    func() time.Time
	after    func(time.Duration) <-chan time.Time
}

func NewWarmer(cfg Config) (*Warmer, error) {
	if cfg.Target == nil {
		return nil, fmt.Errorf("warmer target is required")
	}
	if len(cfg.Leagues) == 0 {
		return nil, fmt.Errorf("warmer leagues are required")
	}
	schedule, err := cron.ParseStandard(cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parse warmup schedule: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	return &Warmer{
		schedule: schedule,
		leagues:  append([]string(nil), cfg.Leagues...),
		location: location,
		target:   cfg.Target,
		sink:     cfg.Sink,
		logger:   logger.With("component", "cache_warmer"),
		clock:    time.Now,
		after:    time.After,
	}, nil
}

// Next reports when the warmer fires after t, evaluated in the configured zone.
func (w *Warmer) Next(t time.Time) time.Time {
	return w.schedule.Next(t.In(w.location))
}

// Run blocks until ctx is done.
func (w *Warmer) Run(ctx context.Context) error {
	w.logger.Info("cache warmer started", "leagues", w.leagues)

	for {
		if err := ctx.Err(); err != nil {
			w.logger.Info("cache warmer stopped")
			return err
		}

		now := w.clock()
		wait := w.Next(now).Sub(now)
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			w.logger.Info("cache warmer stopped")
			return ctx.Err()
		case <-w.after(wait):
			w.RunOnce(ctx)
		}
	}
}

func (w *Warmer) RunOnce(ctx context.Context) {
	started := w.clock()
	fixtures, err := w.target.Warm(ctx, w.leagues)
	if w.sink != nil {
		w.sink.WarmupCompleted(fixtures, err)
	}
	if err != nil {
		w.logger.WarnContext(ctx, "cache warmup failed", "error", err)
		return
	}

	w.logger.DebugContext(ctx, "cache warmed",
		"fixtures", fixtures,
		"duration_ms", w.clock().Sub(started).Milliseconds(),
	)
}
