package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
	"github.com/riskibarqy/livescore-aggregator/internal/infrastructure/repository/memory"
	fixturemock "github.com/riskibarqy/livescore-aggregator/internal/mocks/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/cache"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
	"github.com/riskibarqy/livescore-aggregator/internal/usecase"
)

type fixturesResponse struct {
	Response []struct {
		Fixture struct {
			ID     int64 `json:"id"`
			Status struct {
				Short   string `json:"short"`
				Elapsed *int   `json:"elapsed"`
			} `json:"status"`
		} `json:"fixture"`
		League struct {
			Name string `json:"name"`
		} `json:"league"`
		Teams struct {
			Home struct {
				Name string `json:"name"`
				Logo string `json:"logo"`
			} `json:"home"`
			Away struct {
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
		Goals struct {
			Home int `json:"home"`
			Away int `json:"away"`
		} `json:"goals"`
	} `json:"response"`
}

type stubIDs struct{}

func (stubIDs) NewID() (string, error) { return "req-1", nil }

func newTestRouter(t *testing.T, provider fixture.Provider, store *cache.Store[[]fixture.Fixture]) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository([]league.League{
		{ID: "39", Name: "Premier League", Country: "England", Path: "england/premier-league"},
	})
	fixtures := usecase.NewFixtureService(usecase.FixtureServiceConfig{
		Leagues:    leagueRepo,
		Aggregator: usecase.NewAggregatorService(usecase.AggregatorServiceConfig{Provider: provider}),
		Cache:      store,
	})
	handler := NewHandler(HandlerConfig{
		Fixtures: fixtures,
		Leagues:  usecase.NewLeagueService(leagueRepo),
		Logger:   logging.NewNop(),
	})

	return NewRouter(RouterConfig{
		Handler:            handler,
		Metrics:            http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		RequestIDs:         stubIDs{},
		CORSAllowedOrigins: []string{"*"},
		Logger:             logging.NewNop(),
	})
}

func liveFixture() fixture.Fixture {
	minute := 63
	return fixture.Fixture{
		Competition:    "PREMIER LEAGUE",
		HomeTeam:       "Arsenal",
		AwayTeam:       "Chelsea",
		HomeGoals:      1,
		Status:         fixture.StatusLive,
		ElapsedMinutes: &minute,
		HomeLogoURL:    "https://img.test/arsenal.png",
	}
}

func TestListFixtures_RendersResponseEnvelope(t *testing.T) {
	t.Parallel()

	provider := fixturemock.NewProvider(t)
	provider.
		On("FetchCompetition", mock.Anything, "england/premier-league", mock.AnythingOfType("time.Time")).
		Return([]fixture.Fixture{liveFixture()}, nil).
		Once()
	router := newTestRouter(t, provider, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/fixtures?leagues=39", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "req-1", rec.Header().Get(requestIDHeader))

	var body fixturesResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Response, 1)

	got := body.Response[0]
	require.EqualValues(t, 1, got.Fixture.ID)
	require.Equal(t, "LIVE", got.Fixture.Status.Short)
	require.NotNil(t, got.Fixture.Status.Elapsed)
	require.Equal(t, 63, *got.Fixture.Status.Elapsed)
	require.Equal(t, "PREMIER LEAGUE", got.League.Name)
	require.Equal(t, "Arsenal", got.Teams.Home.Name)
	require.Equal(t, "https://img.test/arsenal.png", got.Teams.Home.Logo)
	require.Equal(t, 1, got.Goals.Home)
	require.Equal(t, 0, got.Goals.Away)
}

func TestListFixtures_OmitsElapsedWhenNotLive(t *testing.T) {
	t.Parallel()

	finished := liveFixture()
	finished.Status = fixture.StatusFinished
	provider := fixturemock.NewProvider(t)
	provider.
		On("FetchCompetition", mock.Anything, "england/premier-league", mock.Anything).
		Return([]fixture.Fixture{finished}, nil).
		Once()
	router := newTestRouter(t, provider, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures?leagues=england/premier-league", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"short":"FT"`)
	require.NotContains(t, rec.Body.String(), `"elapsed"`)
}

func TestListFixtures_MissingLeaguesIsInvalidArgument(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixturemock.NewProvider(t), nil)

	for _, target := range []string{"/api/fixtures", "/api/fixtures?leagues=", "/api/fixtures?leagues=%20,%20"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		require.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.Contains(t, rec.Body.String(), `"status":"INVALID_ARGUMENT"`, target)
	}
}

func TestListFixtures_UnknownCatalogIDIsInvalidArgument(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixturemock.NewProvider(t), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures?leagues=999", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListFixtures_FailedCompetitionStillReturns200(t *testing.T) {
	t.Parallel()

	provider := fixturemock.NewProvider(t)
	provider.
		On("FetchCompetition", mock.Anything, "england/premier-league", mock.Anything).
		Return(nil, errors.New("upstream down")).
		Once()
	router := newTestRouter(t, provider, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures?leagues=39", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"response":[]}`, strings.TrimSpace(rec.Body.String()))
}

func TestListFixtures_NoCacheHeaderBypassesCache(t *testing.T) {
	t.Parallel()

	provider := fixturemock.NewProvider(t)
	provider.
		On("FetchCompetition", mock.Anything, "england/premier-league", mock.Anything).
		Return([]fixture.Fixture{liveFixture()}, nil).
		Twice()
	router := newTestRouter(t, provider, cache.NewStore[[]fixture.Fixture](time.Minute))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures?leagues=39", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/fixtures?leagues=39", nil)
	req.Header.Set("Cache-Control", "max-age=0, no-cache")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	provider.AssertNumberOfCalls(t, "FetchCompetition", 2)
}

func TestListLeagues(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixturemock.NewProvider(t), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leagues", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"response":[{"id":"39","name":"Premier League","country":"England","path":"england/premier-league"}]}`,
		strings.TrimSpace(rec.Body.String()),
	)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leagues?country=spain", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"response":[]}`, strings.TrimSpace(rec.Body.String()))
}

func TestSystemRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixturemock.NewProvider(t), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, strings.TrimSpace(rec.Body.String()))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "# metrics", rec.Body.String())
}

func TestRequestID_PropagatesInboundHeader(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, fixturemock.NewProvider(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "upstream-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, "upstream-42", rec.Header().Get(requestIDHeader))
}

func TestRecoverPanic_WritesInternalEnvelope(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"INTERNAL"`)
}
