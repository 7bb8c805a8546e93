package livescore

import (
	"context"
	"strings"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/feedcodec"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

const (
	OverlayStrategyStatic  = "static"
	OverlayStrategyBrowser = "browser"
)

// MinuteMap maps fixture.TeamPair keys to the live-minute text shown on the page.
type MinuteMap map[string]string

func (m MinuteMap) Lookup(pair fixture.TeamPair) (string, bool) {
	if m == nil {
		return "", false
	}
	minute, ok := m[pair.Key()]
	return minute, ok
}

// MinuteOverlay scrapes per-match minute indicators for a competition page.
type MinuteOverlay interface {
	Extract(ctx context.Context, page Page) (MinuteMap, error)
}

type OverlaySelectorConfig struct {
	Strategy string
	Static   MinuteOverlay
	Browser  MinuteOverlay
	Logger   *logging.Logger
}

// OverlaySelector runs the configured overlay, but only for pages that carry at least
// one live record. Failures degrade to an empty map.
type OverlaySelector struct {
	strategy string
	overlays map[string]MinuteOverlay
	logger   *logging.Logger
}

func NewOverlaySelector(cfg OverlaySelectorConfig) *OverlaySelector {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	strategy := strings.ToLower(strings.TrimSpace(cfg.Strategy))
	if strategy == "" {
		strategy = OverlayStrategyStatic
	}

	overlays := make(map[string]MinuteOverlay, 2)
	if cfg.Static != nil {
		overlays[OverlayStrategyStatic] = cfg.Static
	}
	if cfg.Browser != nil {
		overlays[OverlayStrategyBrowser] = cfg.Browser
	}

	return &OverlaySelector{
		strategy: strategy,
		overlays: overlays,
		logger:   logger,
	}
}

func (s *OverlaySelector) Strategy() string {
	return s.strategy
}

func (s *OverlaySelector) Overlay(ctx context.Context, page Page, records []feedcodec.Record) MinuteMap {
	if !hasLiveRecord(records) {
		return MinuteMap{}
	}

	overlay, ok := s.overlays[s.strategy]
	if !ok {
		s.logger.WarnContext(ctx, "overlay strategy not configured", "strategy", s.strategy, "competition", page.CompetitionPath)
		return MinuteMap{}
	}

	minutes, err := overlay.Extract(ctx, page)
	if err != nil {
		s.logger.WarnContext(ctx, "live minute overlay failed, continuing without minutes",
			"strategy", s.strategy,
			"competition", page.CompetitionPath,
			"error", err,
		)
		return MinuteMap{}
	}
	if minutes == nil {
		return MinuteMap{}
	}

	return minutes
}

func hasLiveRecord(records []feedcodec.Record) bool {
	for _, record := range records {
		if strings.TrimSpace(record.Get(codeStatus)) == fixture.RawStatusLive {
			return true
		}
	}
	return false
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// addMinute records one page row. Rows missing a participant are ignored and the
// first row for a pair wins.
func (m MinuteMap) addMinute(home, away, stage string) {
	pair := fixture.TeamPair{Home: collapseWhitespace(home), Away: collapseWhitespace(away)}
	if pair.Home == "" || pair.Away == "" {
		return
	}
	key := pair.Key()
	if _, exists := m[key]; exists {
		return
	}
	m[key] = collapseWhitespace(stage)
}
