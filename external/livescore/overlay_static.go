package livescore

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

// StaticOverlay reads minute indicators from the markup already fetched for the feed.
// It finds nothing when the page renders match rows client-side.
type StaticOverlay struct{}

func NewStaticOverlay() *StaticOverlay {
	return &StaticOverlay{}
}

func (o *StaticOverlay) Extract(_ context.Context, page Page) (MinuteMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Markup))
	if err != nil {
		return nil, crerr.Wrap(err, "parse competition markup")
	}

	out := MinuteMap{}
	doc.Find(selectorMatch).Each(func(_ int, row *goquery.Selection) {
		out.addMinute(
			firstText(row, selectorHomePrimary, selectorHomeFallback),
			firstText(row, selectorAwayPrimary, selectorAwayFallback),
			firstText(row, selectorStagePrimary, selectorStageFallback),
		)
	})

	return out, nil
}

func firstText(row *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if found := row.Find(selector).First(); found.Length() > 0 {
			return found.Text()
		}
	}
	return ""
}
