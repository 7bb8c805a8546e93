package httpapi

import (
	"net/http"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/id"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

type RouterConfig struct {
	Handler            *Handler
	Metrics            http.Handler
	RequestIDs         id.Generator
	CORSAllowedOrigins []string
	Logger             *logging.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ids := cfg.RequestIDs
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, cfg.Handler, cfg.Metrics)
	registerPublicRoutes(mux, cfg.Handler)

	return RequestTracing(RequestID(ids, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
