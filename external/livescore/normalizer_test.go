package livescore

import (
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/platform/feedcodec"
)

func decodeOne(t *testing.T, payload string) feedcodec.Record {
	t.Helper()

	records := feedcodec.Decode(payload)
	if len(records) != 1 {
		t.Fatalf("expected one record, got=%d", len(records))
	}
	return records[0]
}

func TestNormalizer_DefaultsBlankGoalsToZero(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(NormalizerConfig{})
	record := decodeOne(t, "AA÷x1¬AB÷1¬AE÷Arsenal¬AF÷Chelsea¬AG÷¬AH÷-2")

	got, ok := n.Normalize(record, fixture.Classify("1", "", false), "england/premier-league", time.Now())
	if !ok {
		t.Fatalf("expected record to be kept")
	}
	if got.HomeGoals != 0 || got.AwayGoals != 0 {
		t.Fatalf("expected 0-0, got %d-%d", got.HomeGoals, got.AwayGoals)
	}
	if got.Competition != "PREMIER LEAGUE" {
		t.Fatalf("unexpected competition: %s", got.Competition)
	}
	if got.ExternalID != "x1" || got.ID != 0 {
		t.Fatalf("unexpected ids: external=%s id=%d", got.ExternalID, got.ID)
	}
	if got.KickoffAt != nil {
		t.Fatalf("expected no kickoff without timestamp")
	}
}

func TestNormalizer_DayFilter(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("WIB", 7*60*60)
	today := time.Date(2026, 3, 14, 12, 0, 0, 0, loc)
	n := NewNormalizer(NormalizerConfig{Location: loc})

	cases := []struct {
		name     string
		kickoff  string
		wantKeep bool
	}{
		{name: "yesterday dropped", kickoff: unix(today.AddDate(0, 0, -1)), wantKeep: false},
		{name: "tomorrow dropped", kickoff: unix(today.AddDate(0, 0, 1)), wantKeep: false},
		{name: "today kept", kickoff: unix(today.Add(-11 * time.Hour)), wantKeep: true},
		{name: "utc yesterday but local today kept", kickoff: unix(time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC)), wantKeep: true},
		{name: "unparseable kept", kickoff: "soon", wantKeep: true},
	}
	for _, tc := range cases {
		record := decodeOne(t, "AA÷1¬AD÷"+tc.kickoff+"¬AE÷Home¬AF÷Away")
		_, ok := n.Normalize(record, fixture.Classification{Status: fixture.StatusScheduled}, "x/y", today)
		if ok != tc.wantKeep {
			t.Fatalf("%s: keep=%v want=%v", tc.name, ok, tc.wantKeep)
		}
	}

	record := decodeOne(t, "AA÷1¬AE÷Home¬AF÷Away")
	if _, ok := n.Normalize(record, fixture.Classification{}, "x/y", today); !ok {
		t.Fatalf("expected record without timestamp to be kept")
	}
}

func TestNormalizer_DropsMissingParticipants(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(NormalizerConfig{})
	for _, payload := range []string{"AA÷1¬AF÷Away", "AA÷1¬AE÷Home¬AF÷ "} {
		if _, ok := n.Normalize(decodeOne(t, payload), fixture.Classification{}, "x/y", time.Now()); ok {
			t.Fatalf("expected %q to be dropped", payload)
		}
	}
}

func TestNormalizer_LogosAndStatus(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(NormalizerConfig{LogoBaseURL: "https://img.test/", LogoPlaceholder: "https://img.test/none.png"})
	record := decodeOne(t, "AA÷1¬AE÷Home¬AF÷Away¬AG÷3¬AH÷1¬OA÷home.png")

	elapsed := 88
	got, ok := n.Normalize(record, fixture.Classification{Status: fixture.StatusFinished, Elapsed: &elapsed}, "x/y", time.Now())
	if !ok {
		t.Fatalf("expected record to be kept")
	}
	if got.HomeLogoURL != "https://img.test/home.png" {
		t.Fatalf("unexpected home logo: %s", got.HomeLogoURL)
	}
	if got.AwayLogoURL != "https://img.test/none.png" {
		t.Fatalf("unexpected away logo: %s", got.AwayLogoURL)
	}
	if got.Status != fixture.StatusFinished || got.ElapsedMinutes != nil {
		t.Fatalf("finished fixture must not carry elapsed minutes")
	}
	if got.HomeGoals != 3 || got.AwayGoals != 1 {
		t.Fatalf("unexpected score %d-%d", got.HomeGoals, got.AwayGoals)
	}
}

func unix(value time.Time) string {
	return strconv.FormatInt(value.Unix(), 10)
}
