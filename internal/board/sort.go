package board

import (
	"sort"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
)

func displayRank(status fixture.Status) int {
	switch status {
	case fixture.StatusLive:
		return 0
	case fixture.StatusFinished:
		return 1
	default:
		return 2
	}
}

// SortForDisplay orders fixtures live, then finished, then scheduled. The sort is
// stable, so discovery order is kept inside each group.
func SortForDisplay(fixtures []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, len(fixtures))
	copy(out, fixtures)
	sort.SliceStable(out, func(i, j int) bool {
		return displayRank(out[i].Status) < displayRank(out[j].Status)
	})
	return out
}
