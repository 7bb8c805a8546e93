package livescore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

const (
	defaultBrowserTimeout = 30 * time.Second
	defaultRowWait        = 10 * time.Second
)

type BrowserOverlayConfig struct {
	Timeout   time.Duration
	RowWait   time.Duration
	ExecPath  string
	UserAgent string
	Logger    *logging.Logger
}

// BrowserOverlay renders the competition page in headless Chrome and reads the
// minute indicators from the live DOM. Every Extract call owns its own browser.
type BrowserOverlay struct {
	timeout   time.Duration
	rowWait   time.Duration
	execPath  string
	userAgent string
	logger    *logging.Logger
}

type browserRow struct {
	Home  string `json:"home"`
	Away  string `json:"away"`
	Stage string `json:"stage"`
}

func NewBrowserOverlay(cfg BrowserOverlayConfig) *BrowserOverlay {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultBrowserTimeout
	}
	rowWait := cfg.RowWait
	if rowWait <= 0 || rowWait > timeout {
		rowWait = minDuration(defaultRowWait, timeout)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &BrowserOverlay{
		timeout:   timeout,
		rowWait:   rowWait,
		execPath:  strings.TrimSpace(cfg.ExecPath),
		userAgent: userAgent,
		logger:    logger,
	}
}

func (o *BrowserOverlay) Extract(ctx context.Context, page Page) (MinuteMap, error) {
	if strings.TrimSpace(page.URL) == "" {
		return nil, crerr.New("page url is required for browser overlay")
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.UserAgent(o.userAgent))
	if o.execPath != "" {
		opts = append(opts, chromedp.ExecPath(o.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// The first Run starts the browser and must not carry a timeout of its own,
	// otherwise expiry would tear the browser down mid-extraction.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, crerr.Wrap(err, "start browser")
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, o.timeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, chromedp.Navigate(page.URL)); err != nil {
		return nil, crerr.Wrapf(err, "navigate %s", page.URL)
	}

	waitCtx, cancelWait := context.WithTimeout(navCtx, o.rowWait)
	if err := chromedp.Run(waitCtx, chromedp.WaitReady(selectorMatch, chromedp.ByQuery)); err != nil {
		o.logger.DebugContext(ctx, "no match rows rendered before wait expired", "competition", page.CompetitionPath)
	}
	cancelWait()

	var rows []browserRow
	if err := chromedp.Run(navCtx, chromedp.Evaluate(browserRowsScript, &rows)); err != nil {
		return nil, crerr.Wrap(err, "read rendered match rows")
	}

	out := MinuteMap{}
	for _, row := range rows {
		out.addMinute(row.Home, row.Away, row.Stage)
	}

	return out, nil
}

var browserRowsScript = fmt.Sprintf(`(() => {
  const pick = (row, selectors) => {
    for (const selector of selectors) {
      const el = row.querySelector(selector);
      if (el) return el.textContent || "";
    }
    return "";
  };
  return Array.from(document.querySelectorAll(%q)).map((row) => ({
    home: pick(row, [%q, %q]),
    away: pick(row, [%q, %q]),
    stage: pick(row, [%q, %q]),
  }));
})()`,
	selectorMatch,
	selectorHomePrimary, selectorHomeFallback,
	selectorAwayPrimary, selectorAwayFallback,
	selectorStagePrimary, selectorStageFallback,
)

func minDuration(left, right time.Duration) time.Duration {
	if left < right {
		return left
	}
	return right
}
