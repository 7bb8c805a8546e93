package livescore

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/feedcodec"
)

// ErrFeedNotFound is returned when neither embedded sub-feed is present in the page.
var ErrFeedNotFound = crerr.New("embedded feed not found")

var feedDataRegex = regexp.MustCompile("data:\\s*`([^`]+)`")

// ExtractFeed locates the fixtures and results sub-feeds embedded in the page scripts
// and joins them as fixtures + record separator + results. A missing sub-feed
// contributes an empty payload.
func ExtractFeed(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", crerr.Wrap(err, "parse competition page")
	}

	var (
		fixtures, results           string
		foundFixtures, foundResults bool
	)
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if !foundFixtures {
			fixtures, foundFixtures = payloadAfter(text, fixturesFeedMarker)
		}
		if !foundResults {
			results, foundResults = payloadAfter(text, resultsFeedMarker)
		}
		return !(foundFixtures && foundResults)
	})
	if !foundFixtures && !foundResults {
		return "", ErrFeedNotFound
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString(fixtures)
	_, _ = buf.WriteString(feedcodec.RecordSeparator)
	_, _ = buf.WriteString(results)

	return buf.String(), nil
}

// payloadAfter captures the first data literal following marker in script.
func payloadAfter(script, marker string) (string, bool) {
	idx := strings.Index(script, marker)
	if idx < 0 {
		return "", false
	}
	match := feedDataRegex.FindStringSubmatch(script[idx+len(marker):])
	if match == nil {
		return "", false
	}
	return match[1], true
}
