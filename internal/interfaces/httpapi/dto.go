package httpapi

import (
	"time"

	"github.com/riskibarqy/livescore-aggregator/internal/domain/fixture"
	"github.com/riskibarqy/livescore-aggregator/internal/domain/league"
)

type fixtureDTO struct {
	Fixture fixtureInfoDTO `json:"fixture"`
	League  leagueNameDTO  `json:"league"`
	Teams   teamsDTO       `json:"teams"`
	Goals   goalsDTO       `json:"goals"`
}

type fixtureInfoDTO struct {
	ID     int64     `json:"id"`
	Date   string    `json:"date,omitempty"`
	Status statusDTO `json:"status"`
}

type statusDTO struct {
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed,omitempty"`
}

type leagueNameDTO struct {
	Name string `json:"name"`
}

type teamsDTO struct {
	Home teamDTO `json:"home"`
	Away teamDTO `json:"away"`
}

type teamDTO struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type goalsDTO struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type leagueDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Path    string `json:"path"`
}

func fixtureToDTO(item fixture.Fixture) fixtureDTO {
	out := fixtureDTO{
		Fixture: fixtureInfoDTO{
			ID: item.ID,
			Status: statusDTO{
				Short: item.Status.Short(),
			},
		},
		League: leagueNameDTO{Name: item.Competition},
		Teams: teamsDTO{
			Home: teamDTO{Name: item.HomeTeam, Logo: item.HomeLogoURL},
			Away: teamDTO{Name: item.AwayTeam, Logo: item.AwayLogoURL},
		},
		Goals: goalsDTO{Home: item.HomeGoals, Away: item.AwayGoals},
	}
	if item.KickoffAt != nil {
		out.Fixture.Date = item.KickoffAt.UTC().Format(time.RFC3339)
	}
	if item.Status == fixture.StatusLive && item.ElapsedMinutes != nil {
		minute := *item.ElapsedMinutes
		out.Fixture.Status.Elapsed = &minute
	}
	return out
}

func leagueToDTO(item league.League) leagueDTO {
	return leagueDTO{
		ID:      item.ID,
		Name:    item.Name,
		Country: item.Country,
		Path:    item.Path,
	}
}
