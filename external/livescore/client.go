package livescore

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/resilience"
	"github.com/riskibarqy/livescore-aggregator/internal/usecase"
)

const (
	defaultBaseURL   = "https://www.livescore.in"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	maxPageBytes     = 8 << 20
)

var errLivescoreTransient = crerr.New("livescore transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Page is a fetched competition page.
type Page struct {
	CompetitionPath string
	URL             string
	Markup          string
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxRetries   int
	retryBackoff time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.SingleFlight[[]byte]
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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		userAgent:    userAgent,
		maxRetries:   maxInt(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		logger:       logger,
		breaker:      resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

// PageURL returns the provider page for a competition path such as "england/premier-league".
func (c *Client) PageURL(competitionPath string) string {
	return c.baseURL + "/football/" + strings.Trim(strings.TrimSpace(competitionPath), "/") + "/"
}

func (c *Client) UserAgent() string {
	return c.userAgent
}

// FetchPage retrieves the competition page markup. Identical concurrent fetches share
// one upstream request.
func (c *Client) FetchPage(ctx context.Context, competitionPath string) (Page, error) {
	path := strings.Trim(strings.TrimSpace(competitionPath), "/")
	if path == "" {
		return Page{}, fmt.Errorf("%w: competition path is required", usecase.ErrInvalidInput)
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "livescore circuit breaker rejected request", "state", c.breaker.State(), "competition", path)
		return Page{}, fmt.Errorf("%w: livescore provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.PageURL(path)
	raw, err, shared := c.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		c.breaker.Record(isLivescoreCircuitFailure(reqErr))
		return raw, reqErr
	})
	if err != nil {
		return Page{}, err
	}
	if shared {
		c.logger.DebugContext(ctx, "livescore page fetch shared with in-flight request", "competition", path)
	}

	return Page{
		CompetitionPath: path,
		URL:             fullURL,
		Markup:          string(raw),
	}, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errLivescoreTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errLivescoreTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errLivescoreTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "livescore request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isLivescoreCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errLivescoreTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
