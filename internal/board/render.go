package board

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
)

// RenderTable writes the numbered board. Row numbers are 1-based and match the
// input accepted by the refresh prompt.
func RenderTable(w io.Writer, fixtures []fixture.Fixture) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	total := 0
	if _, err := fmt.Fprintln(tw, "#\tSTATUS\tHOME\tSCORE\tAWAY\tCOMPETITION"); err != nil {
		return err
	}
	for i, item := range fixtures {
		total += item.HomeGoals + item.AwayGoals
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d - %d\t%s\t%s\n",
			i+1,
			statusLabel(item),
			item.HomeTeam,
			item.HomeGoals,
			item.AwayGoals,
			item.AwayTeam,
			item.Competition,
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d matches, %d goals\n", len(fixtures), total)
	return err
}

func statusLabel(item fixture.Fixture) string {
	if item.Status == fixture.StatusLive && item.ElapsedMinutes != nil {
		return strconv.Itoa(*item.ElapsedMinutes) + "'"
	}
	return item.Status.Short()
}
