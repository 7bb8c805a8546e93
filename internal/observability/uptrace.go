package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/livescore-aggregator/internal/config"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

// TraceShutdown flushes pending spans.
type TraceShutdown func(context.Context) error

func noopTraceShutdown(context.Context) error { return nil }

// InitUptrace installs the global OpenTelemetry tracer provider when tracing is
// configured. Spans carry the overlay strategy and upstream host as resource attributes.
func InitUptrace(cfg config.Config, logger *logging.Logger) (TraceShutdown, error) {
	if logger == nil {
		logger = logging.Default()
	}

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return noopTraceShutdown, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("tracing disabled", "reason", "UPTRACE_DSN empty")
		return noopTraceShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("livescore.overlay_strategy", cfg.LivescoreOverlayStrategy),
			attribute.String("livescore.base_url", cfg.LivescoreBaseURL),
			attribute.Bool("livescore.cache_enabled", cfg.CacheEnabled),
		),
	)

	logger.Info("tracing enabled",
		"exporter", "uptrace",
		"service_version", cfg.ServiceVersion,
		"overlay", cfg.LivescoreOverlayStrategy,
	)

	return uptrace.Shutdown, nil
}
