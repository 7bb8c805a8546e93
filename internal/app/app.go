package app

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/livescore-aggregator/external/livescore"
	"github.com/riskibarqy/livescore-aggregator/internal/config"
	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/livescore-aggregator/internal/interfaces/httpapi"
	"github.com/riskibarqy/livescore-aggregator/internal/metrics"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/cache"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/id"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/livescore-aggregator/internal/scheduler"
	"github.com/riskibarqy/livescore-aggregator/internal/usecase"
)

// App holds the long-running pieces started by cmd/api.
type App struct {
	Server *http.Server
	// Warmer is nil unless WARMUP_ENABLED=true and the response cache is on.
	Warmer *scheduler.Warmer
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	leagues, err := memory.LoadLeagueCatalog(cfg.LeagueCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load league catalog: %w", err)
	}
	leagueRepo := memory.NewLeagueRepository(leagues)

	sink, metricsHandler := newMetrics(cfg, logger)

	provider := newLivescoreProvider(cfg, sink, logger)
	aggregator := usecase.NewAggregatorService(usecase.AggregatorServiceConfig{
		Provider: provider,
		Observer: sink,
		Location: cfg.Location,
		Logger:   logger,
	})

	var store *cache.Store[[]fixture.Fixture]
	if cfg.CacheEnabled {
		store = cache.NewStore[[]fixture.Fixture](cfg.CacheTTL)
	}
	fixtureSvc := usecase.NewFixtureService(usecase.FixtureServiceConfig{
		Leagues:    leagueRepo,
		Aggregator: aggregator,
		Cache:      store,
		Logger:     logger,
	})
	leagueSvc := usecase.NewLeagueService(leagueRepo)

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Fixtures: fixtureSvc,
		Leagues:  leagueSvc,
		Logger:   logger,
	})
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:            handler,
		Metrics:            metricsHandler,
		RequestIDs:         id.NewUUIDGenerator(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	})

	out := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	if cfg.WarmupEnabled {
		if store == nil {
			logger.Warn("cache warmer disabled", "reason", "CACHE_ENABLED=false")
			return out, nil
		}
		out.Warmer, err = scheduler.NewWarmer(scheduler.Config{
			Schedule: cfg.WarmupSchedule,
			Leagues:  cfg.WarmupLeagues,
			Location: cfg.Location,
			Target:   fixtureSvc,
			Sink:     sink,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build cache warmer: %w", err)
		}
	}

	return out, nil
}

func newLivescoreProvider(cfg config.Config, sink metrics.Sink, logger *logging.Logger) *livescore.Provider {
	client := livescore.NewClient(livescore.ClientConfig{
		BaseURL:    cfg.LivescoreBaseURL,
		UserAgent:  cfg.LivescoreUserAgent,
		Timeout:    cfg.LivescoreTimeout,
		MaxRetries: cfg.LivescoreMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LivescoreCircuitEnabled,
			FailureThreshold: cfg.LivescoreCircuitFailureCount,
			OpenTimeout:      cfg.LivescoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LivescoreCircuitHalfOpenMaxReq,
			OnStateChange: func(from, to resilience.CircuitState) {
				logger.Warn("livescore circuit breaker changed state", "from", from, "to", to)
				sink.CircuitStateChanged("livescore", string(to))
			},
		},
	})

	overlayCfg := livescore.OverlaySelectorConfig{
		Strategy: cfg.LivescoreOverlayStrategy,
		Static:   livescore.NewStaticOverlay(),
		Logger:   logger,
	}
	if cfg.LivescoreOverlayStrategy == config.OverlayBrowser {
		overlayCfg.Browser = livescore.NewBrowserOverlay(livescore.BrowserOverlayConfig{
			Timeout:   cfg.LivescoreBrowserTimeout,
			ExecPath:  cfg.LivescoreBrowserExecPath,
			UserAgent: client.UserAgent(),
			Logger:    logger,
		})
	}

	return livescore.NewProvider(livescore.ProviderConfig{
		Fetcher: client,
		Overlay: livescore.NewOverlaySelector(overlayCfg),
		Normalizer: livescore.NewNormalizer(livescore.NormalizerConfig{
			LogoBaseURL:     cfg.LivescoreLogoBaseURL,
			LogoPlaceholder: cfg.LivescoreLogoPlaceholder,
			Location:        cfg.Location,
			Logger:          logger,
		}),
		Logger: logger,
	})
}

func newMetrics(cfg config.Config, logger *logging.Logger) (metrics.Sink, http.Handler) {
	if !cfg.MetricsEnabled {
		return metrics.NewNoopSink(), nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return metrics.NewPrometheusSink(registry, logger), promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
