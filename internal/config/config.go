package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

// Config stores runtime configuration for the aggregation service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	LogLevel                       logging.Level
	LogFormat                      string
	TimezoneName                   string
	Location                       *time.Location
	CORSAllowedOrigins             []string
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	LivescoreBaseURL               string
	LivescoreUserAgent             string
	LivescoreTimeout               time.Duration
	LivescoreMaxRetries            int
	LivescoreCircuitEnabled        bool
	LivescoreCircuitFailureCount   int
	LivescoreCircuitOpenTimeout    time.Duration
	LivescoreCircuitHalfOpenMaxReq int
	LivescoreLogoBaseURL           string
	LivescoreLogoPlaceholder       string
	LivescoreOverlayStrategy       string
	LivescoreBrowserTimeout        time.Duration
	LivescoreBrowserExecPath       string
	LeagueCatalogPath              string
	WarmupEnabled                  bool
	WarmupSchedule                 string
	WarmupLeagues                  []string
	MetricsEnabled                 bool
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
}

const (
	OverlayStatic  = "static"
	OverlayBrowser = "browser"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "120s")
	if err != nil {
		return Config{}, err
	}

	timezoneName := strings.TrimSpace(getEnv("APP_TIMEZONE", "UTC"))
	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_TIMEZONE: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "20s")
	if err != nil {
		return Config{}, err
	}

	livescoreTimeout, err := getEnvAsDuration("LIVESCORE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	livescoreMaxRetries, err := getEnvAsInt("LIVESCORE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVESCORE_MAX_RETRIES: %w", err)
	}
	if livescoreMaxRetries < 0 {
		return Config{}, fmt.Errorf("LIVESCORE_MAX_RETRIES must be >= 0")
	}
	livescoreCircuitEnabled, err := strconv.ParseBool(getEnv("LIVESCORE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVESCORE_CIRCUIT_ENABLED: %w", err)
	}
	livescoreCircuitFailureCount, err := getEnvAsInt("LIVESCORE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVESCORE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if livescoreCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("LIVESCORE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	livescoreCircuitOpenTimeout, err := getEnvAsDuration("LIVESCORE_CIRCUIT_OPEN_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}
	livescoreCircuitHalfOpenMaxReq, err := getEnvAsInt("LIVESCORE_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVESCORE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if livescoreCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("LIVESCORE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	overlayStrategy, err := parseOverlayStrategy(getEnv("LIVESCORE_OVERLAY_STRATEGY", OverlayStatic))
	if err != nil {
		return Config{}, err
	}
	browserTimeout, err := getEnvAsDuration("LIVESCORE_BROWSER_TIMEOUT", "30s")
	if err != nil {
		return Config{}, err
	}

	warmupEnabled, err := strconv.ParseBool(getEnv("WARMUP_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse WARMUP_ENABLED: %w", err)
	}
	warmupSchedule := strings.TrimSpace(getEnv("WARMUP_SCHEDULE", "*/1 * * * *"))
	warmupLeagues := splitCSV(getEnv("WARMUP_LEAGUES", ""))
	if warmupEnabled {
		if _, err := cron.ParseStandard(warmupSchedule); err != nil {
			return Config{}, fmt.Errorf("parse WARMUP_SCHEDULE: %w", err)
		}
		if len(warmupLeagues) == 0 {
			return Config{}, fmt.Errorf("WARMUP_LEAGUES is required when WARMUP_ENABLED=true")
		}
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "livescore-aggregator"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:                      strings.ToLower(getEnv("APP_LOG_FORMAT", logging.FormatJSON)),
		TimezoneName:                   timezoneName,
		Location:                       location,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		LivescoreBaseURL:               strings.TrimSpace(getEnv("LIVESCORE_BASE_URL", "https://www.livescore.in")),
		LivescoreUserAgent:             strings.TrimSpace(getEnv("LIVESCORE_USER_AGENT", "")),
		LivescoreTimeout:               livescoreTimeout,
		LivescoreMaxRetries:            livescoreMaxRetries,
		LivescoreCircuitEnabled:        livescoreCircuitEnabled,
		LivescoreCircuitFailureCount:   livescoreCircuitFailureCount,
		LivescoreCircuitOpenTimeout:    livescoreCircuitOpenTimeout,
		LivescoreCircuitHalfOpenMaxReq: livescoreCircuitHalfOpenMaxReq,
		LivescoreLogoBaseURL:           strings.TrimSpace(getEnv("LIVESCORE_LOGO_BASE_URL", "https://www.livescore.in/res/image/data/")),
		LivescoreLogoPlaceholder:       strings.TrimSpace(getEnv("LIVESCORE_LOGO_PLACEHOLDER", "https://via.placeholder.com/40")),
		LivescoreOverlayStrategy:       overlayStrategy,
		LivescoreBrowserTimeout:        browserTimeout,
		LivescoreBrowserExecPath:       strings.TrimSpace(getEnv("LIVESCORE_BROWSER_EXEC_PATH", "")),
		LeagueCatalogPath:              strings.TrimSpace(getEnv("LEAGUE_CATALOG_PATH", "")),
		WarmupEnabled:                  warmupEnabled,
		WarmupSchedule:                 warmupSchedule,
		WarmupLeagues:                  warmupLeagues,
		MetricsEnabled:                 metricsEnabled,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// BoardConfig configures the terminal board client.
type BoardConfig struct {
	APIBaseURL string
	Leagues    []string
	Timeout    time.Duration
	LogLevel   logging.Level
	LogFormat  string
}

func LoadBoard() (BoardConfig, error) {
	timeout, err := getEnvAsDuration("BOARD_TIMEOUT", "90s")
	if err != nil {
		return BoardConfig{}, err
	}

	cfg := BoardConfig{
		APIBaseURL: strings.TrimRight(strings.TrimSpace(getEnv("BOARD_API_BASE_URL", "http://localhost:8080")), "/"),
		Leagues:    splitCSV(getEnv("BOARD_LEAGUES", "39,140")),
		Timeout:    timeout,
		LogLevel:   parseLogLevel(getEnv("APP_LOG_LEVEL", "warn")),
		LogFormat:  strings.ToLower(getEnv("APP_LOG_FORMAT", logging.FormatConsole)),
	}
	if len(cfg.Leagues) == 0 {
		return BoardConfig{}, fmt.Errorf("BOARD_LEAGUES cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseOverlayStrategy(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case OverlayStatic, OverlayBrowser:
		return value, nil
	default:
		return "", fmt.Errorf("invalid LIVESCORE_OVERLAY_STRATEGY %q: valid values are %s, %s", v, OverlayStatic, OverlayBrowser)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
