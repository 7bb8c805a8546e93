package observability

import (
	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/livescore-aggregator/internal/config"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

// InitPyroscope starts continuous profiling when enabled. The returned stop
// flushes the last upload.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("profiling disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	profileTypes := profileTypesFor(cfg)
	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
			"overlay": cfg.LivescoreOverlayStrategy,
		},
		ProfileTypes: profileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("profiling enabled",
		"server_address", cfg.PyroscopeServerAddress,
		"application", cfg.PyroscopeAppName,
		"profiles", len(profileTypes),
	)

	return profiler.Stop, nil
}

// profileTypesFor adds contention profiles for the browser overlay, whose
// goroutines spend most of their time parked on the devtools socket.
func profileTypesFor(cfg config.Config) []pyroscope.ProfileType {
	out := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if cfg.LivescoreOverlayStrategy == config.OverlayBrowser {
		out = append(out, pyroscope.ProfileMutexDuration, pyroscope.ProfileBlockDuration)
	}
	return out
}
