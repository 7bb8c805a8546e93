package fixture

import (
	"regexp"
	"strconv"
	"strings"
)

// Raw status codes carried by the provider feed.
const (
	RawStatusScheduled = "1"
	RawStatusLive      = "2"
	RawStatusFinished  = "3"
)

var minuteRegex = regexp.MustCompile(`^(\d+)\s*(?:\+\s*(\d+))?'?$`)

// Classification is the outcome of Classify. Elapsed is only set for live matches
// whose overlay minute could be parsed.
type Classification struct {
	Status  Status
	Elapsed *int
}

// Classify maps a raw status code plus an optional overlay minute to a canonical state.
// Unknown codes fall back to scheduled.
func Classify(rawStatus string, overlayMinute string, hasOverlay bool) Classification {
	switch strings.TrimSpace(rawStatus) {
	case RawStatusLive:
		out := Classification{Status: StatusLive}
		if !hasOverlay {
			return out
		}
		if minute, ok := ParseMinute(overlayMinute); ok {
			out.Elapsed = &minute
		}
		return out
	case RawStatusFinished:
		return Classification{Status: StatusFinished}
	default:
		return Classification{Status: StatusScheduled}
	}
}

// ParseMinute reads "<base>[+<added>]" ("90+7" -> 97).
func ParseMinute(raw string) (int, bool) {
	match := minuteRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return 0, false
	}

	base, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	if match[2] == "" {
		return base, true
	}

	added, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, false
	}
	return base + added, true
}
