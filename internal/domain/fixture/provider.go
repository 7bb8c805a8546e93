package fixture

import (
	"context"
	"time"
)

// Provider fetches the displayable fixtures of one competition for the reference day.
// Returned fixtures carry no ID; the caller assigns them.
type Provider interface {
	FetchCompetition(ctx context.Context, competitionPath string, today time.Time) ([]Fixture, error)
}
