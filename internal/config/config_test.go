package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("LIVESCORE_OVERLAY_STRATEGY", "")
	t.Setenv("LIVESCORE_BASE_URL", "")
	t.Setenv("APP_SERVICE_NAME", "")
	t.Setenv("APP_LOG_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheTTL != 20*time.Second {
		t.Fatalf("unexpected default CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected default location: %v", cfg.Location)
	}
	if cfg.LivescoreOverlayStrategy != OverlayStatic {
		t.Fatalf("unexpected default overlay strategy: %q", cfg.LivescoreOverlayStrategy)
	}
	if cfg.LivescoreBaseURL != "https://www.livescore.in" {
		t.Fatalf("unexpected default base url: %q", cfg.LivescoreBaseURL)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("unexpected default log format: %q", cfg.LogFormat)
	}
	if cfg.ServiceName != "livescore-aggregator" {
		t.Fatalf("unexpected default service name: %q", cfg.ServiceName)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_OverlayStrategyValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("browser accepted case insensitively", func(t *testing.T) {
		t.Setenv("LIVESCORE_OVERLAY_STRATEGY", " Browser ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.LivescoreOverlayStrategy != OverlayBrowser {
			t.Fatalf("unexpected overlay strategy: %q", cfg.LivescoreOverlayStrategy)
		}
	})

	t.Run("unknown rejected", func(t *testing.T) {
		t.Setenv("LIVESCORE_OVERLAY_STRATEGY", "headless")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown overlay strategy")
		}
	})
}

func TestLoad_TimezoneParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("valid zone", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Location.String() != "Asia/Jakarta" {
			t.Fatalf("unexpected location: %s", cfg.Location)
		}
	})

	t.Run("invalid zone", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Mars/Olympus")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown timezone")
		}
	})
}

func TestLoad_LivescoreValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cases := map[string]string{
		"LIVESCORE_TIMEOUT":               "0s",
		"LIVESCORE_MAX_RETRIES":           "-1",
		"LIVESCORE_CIRCUIT_FAILURE_COUNT": "0",
		"LIVESCORE_CIRCUIT_ENABLED":       "maybe",
		"CACHE_TTL":                       "soon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_WarmupValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("WARMUP_ENABLED", "true")

	t.Run("requires leagues", func(t *testing.T) {
		t.Setenv("WARMUP_SCHEDULE", "")
		t.Setenv("WARMUP_LEAGUES", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when WARMUP_LEAGUES is empty")
		}
	})

	t.Run("rejects bad schedule", func(t *testing.T) {
		t.Setenv("WARMUP_SCHEDULE", "every minute")
		t.Setenv("WARMUP_LEAGUES", "39")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid WARMUP_SCHEDULE")
		}
	})

	t.Run("parses leagues", func(t *testing.T) {
		t.Setenv("WARMUP_SCHEDULE", "*/2 * * * *")
		t.Setenv("WARMUP_LEAGUES", "39, 140")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.WarmupLeagues) != 2 || cfg.WarmupLeagues[1] != "140" {
			t.Fatalf("unexpected warmup leagues: %+v", cfg.WarmupLeagues)
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "livescore-aggregator-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "livescore-aggregator-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoadBoard(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("BOARD_API_BASE_URL", "")
		t.Setenv("BOARD_LEAGUES", "")
		t.Setenv("BOARD_TIMEOUT", "")

		cfg, err := LoadBoard()
		if err != nil {
			t.Fatalf("load board config: %v", err)
		}
		if cfg.APIBaseURL != "http://localhost:8080" {
			t.Fatalf("unexpected base url: %q", cfg.APIBaseURL)
		}
		if len(cfg.Leagues) != 2 || cfg.Leagues[0] != "39" {
			t.Fatalf("unexpected leagues: %+v", cfg.Leagues)
		}
		if cfg.Timeout != 90*time.Second {
			t.Fatalf("unexpected timeout: %s", cfg.Timeout)
		}
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Setenv("BOARD_API_BASE_URL", "http://scores.local:9000/")
		t.Setenv("BOARD_LEAGUES", "england/premier-league")

		cfg, err := LoadBoard()
		if err != nil {
			t.Fatalf("load board config: %v", err)
		}
		if cfg.APIBaseURL != "http://scores.local:9000" {
			t.Fatalf("unexpected base url: %q", cfg.APIBaseURL)
		}
		if cfg.Leagues[0] != "england/premier-league" {
			t.Fatalf("unexpected leagues: %+v", cfg.Leagues)
		}
	})
}
