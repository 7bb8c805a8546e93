package fixture

import (
	"strings"
	"time"
)

// Status is the canonical match state shared by every fetch path.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusFinished  Status = "FINISHED"
)

// Short codes rendered in the outbound payload.
const (
	ShortScheduled = "NS"
	ShortLive      = "LIVE"
	ShortFinished  = "FT"
)

// Fixture is one normalized match as handed to the display layer.
type Fixture struct {
	ID             int64
	ExternalID     string
	Competition    string
	HomeTeam       string
	AwayTeam       string
	HomeGoals      int
	AwayGoals      int
	Status         Status
	ElapsedMinutes *int
	HomeLogoURL    string
	AwayLogoURL    string
	KickoffAt      *time.Time
}

func (f Fixture) Pair() TeamPair {
	return TeamPair{Home: f.HomeTeam, Away: f.AwayTeam}
}

func (s Status) Short() string {
	switch s {
	case StatusLive:
		return ShortLive
	case StatusFinished:
		return ShortFinished
	default:
		return ShortScheduled
	}
}

func IsLiveStatus(status Status) bool {
	return status == StatusLive
}

func IsFinishedStatus(status Status) bool {
	return status == StatusFinished
}

// CompetitionDisplayName turns "europe/europa-league" into "EUROPA LEAGUE".
func CompetitionDisplayName(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	return strings.ToUpper(strings.ReplaceAll(trimmed, "-", " "))
}
