package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
	"github.com/riskibarqy/livescore-aggregator/internal/usecase"
)

type HandlerConfig struct {
	Fixtures *usecase.FixtureService
	Leagues  *usecase.LeagueService
	Logger   *logging.Logger
}

type Handler struct {
	fixtureService *usecase.FixtureService
	leagueService  *usecase.LeagueService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		fixtureService: cfg.Fixtures,
		leagueService:  cfg.Leagues,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type fixturesQuery struct {
	Leagues []string `validate:"min=1,max=20,dive,required,max=120"`
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r.Context(), "ListFixtures")
	defer span.End()

	query := fixturesQuery{Leagues: splitLeagues(r.URL.Query().Get("leagues"))}
	if err := h.validator.StructCtx(ctx, query); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: leagues must list 1 to 20 competitions: %v", usecase.ErrInvalidInput, err))
		return
	}
	bypass := wantsFreshData(r)
	span.SetAttributes(
		attribute.StringSlice("fixtures.leagues", query.Leagues),
		attribute.Bool("fixtures.bypass_cache", bypass),
	)

	items, err := h.fixtureService.ListFixtures(ctx, usecase.FixtureQuery{
		Leagues:     query.Leagues,
		BypassCache: bypass,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "leagues", query.Leagues, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureToDTO(item))
	}
	w.Header().Set("Cache-Control", "no-store")
	writeResponse(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	ctx, span := startHandlerSpan(r.Context(), "ListLeagues", attribute.String("league.country", country))
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx, country)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		out = append(out, leagueToDTO(item))
	}
	writeResponse(ctx, w, http.StatusOK, out)
}

func splitLeagues(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func wantsFreshData(r *http.Request) bool {
	for _, directive := range strings.Split(r.Header.Get("Cache-Control"), ",") {
		if strings.EqualFold(strings.TrimSpace(directive), "no-cache") {
			return true
		}
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("Pragma")), "no-cache")
}
