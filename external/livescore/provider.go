package livescore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/feedcodec"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

// PageFetcher is satisfied by *Client.
type PageFetcher interface {
	FetchPage(ctx context.Context, competitionPath string) (Page, error)
}

type ProviderConfig struct {
	Fetcher    PageFetcher
	Overlay    *OverlaySelector
	Normalizer *Normalizer
	Logger     *logging.Logger
}

// Provider runs the per-competition pipeline: fetch, extract, decode, overlay,
// classify and normalize.
type Provider struct {
	fetcher    PageFetcher
	overlay    *OverlaySelector
	normalizer *Normalizer
	logger     *logging.Logger
}

func NewProvider(cfg ProviderConfig) *Provider {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	overlay := cfg.Overlay
	if overlay == nil {
		overlay = NewOverlaySelector(OverlaySelectorConfig{Static: NewStaticOverlay(), Logger: logger})
	}
	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = NewNormalizer(NormalizerConfig{Logger: logger})
	}

	return &Provider{
		fetcher:    cfg.Fetcher,
		overlay:    overlay,
		normalizer: normalizer,
		logger:     logger,
	}
}

var _ fixture.Provider = (*Provider)(nil)

func (p *Provider) FetchCompetition(ctx context.Context, competitionPath string, today time.Time) ([]fixture.Fixture, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("livescore page fetcher is not configured")
	}
	path := strings.Trim(strings.TrimSpace(competitionPath), "/")

	page, err := p.fetcher.FetchPage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch competition page %s: %w", path, err)
	}

	payload, err := ExtractFeed(page.Markup)
	if err != nil {
		return nil, fmt.Errorf("extract feed %s: %w", path, err)
	}

	records := feedcodec.Decode(payload)
	minutes := p.overlay.Overlay(ctx, page, records)

	out := make([]fixture.Fixture, 0, len(records))
	for _, record := range records {
		pair := fixture.TeamPair{
			Home: strings.TrimSpace(record.Get(codeHomeName)),
			Away: strings.TrimSpace(record.Get(codeAwayName)),
		}
		minute, hasOverlay := minutes.Lookup(pair)
		class := fixture.Classify(record.Get(codeStatus), minute, hasOverlay)

		item, ok := p.normalizer.Normalize(record, class, path, today)
		if !ok {
			continue
		}
		out = append(out, item)
	}

	p.logger.DebugContext(ctx, "competition normalized",
		"competition", path,
		"records", len(records),
		"fixtures", len(out),
		"overlay_minutes", len(minutes),
	)
	return out, nil
}
