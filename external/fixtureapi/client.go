package fixtureapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

const defaultBaseURL = "http://localhost:8080"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client reads fixtures from the aggregation service's HTTP API. Every call asks the
// service to skip its response cache.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 90 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (c *Client) FetchFixtures(ctx context.Context, leagues []string) ([]fixture.Fixture, error) {
	if len(leagues) == 0 {
		return nil, fmt.Errorf("at least one league is required")
	}

	query := url.Values{}
	query.Set("leagues", strings.Join(leagues, ","))
	fullURL := c.baseURL + "/api/fixtures?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure errorEnvelope
		if sonic.Unmarshal(raw, &failure) == nil && failure.Error.Message != "" {
			return nil, fmt.Errorf("fixture api status=%d %s: %s", resp.StatusCode, failure.Error.Status, failure.Error.Message)
		}
		return nil, fmt.Errorf("fixture api status=%d", resp.StatusCode)
	}

	var envelope fixturesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode fixtures payload: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, item.toDomain())
	}
	c.logger.DebugContext(ctx, "fixtures received", "count", len(out), "leagues", len(leagues))
	return out, nil
}

type fixturesEnvelope struct {
	Response []fixturePayload `json:"response"`
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

type fixturePayload struct {
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
		Home teamPayload `json:"home"`
		Away teamPayload `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type teamPayload struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

func (p fixturePayload) toDomain() fixture.Fixture {
	status := statusFromShort(p.Fixture.Status.Short)
	var elapsed *int
	if status == fixture.StatusLive && p.Fixture.Status.Elapsed != nil {
		minute := *p.Fixture.Status.Elapsed
		elapsed = &minute
	}

	return fixture.Fixture{
		ID:             p.Fixture.ID,
		Competition:    p.League.Name,
		HomeTeam:       p.Teams.Home.Name,
		AwayTeam:       p.Teams.Away.Name,
		HomeGoals:      valueOrZero(p.Goals.Home),
		AwayGoals:      valueOrZero(p.Goals.Away),
		Status:         status,
		ElapsedMinutes: elapsed,
		HomeLogoURL:    p.Teams.Home.Logo,
		AwayLogoURL:    p.Teams.Away.Logo,
	}
}

// statusFromShort also accepts the period codes older dashboards sent for live and
// finished matches.
func statusFromShort(short string) fixture.Status {
	switch strings.ToUpper(strings.TrimSpace(short)) {
	case fixture.ShortLive, "1H", "HT", "2H", "ET", "BT", "P":
		return fixture.StatusLive
	case fixture.ShortFinished, "AET", "PEN":
		return fixture.StatusFinished
	default:
		return fixture.StatusScheduled
	}
}

func valueOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}
