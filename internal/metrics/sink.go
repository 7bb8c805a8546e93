package metrics

import "time"

// Sink records aggregation metrics. Methods are fire-and-forget and never block.
type Sink interface {
	ObserveCompetition(competitionPath string, fixtures int, err error, elapsed time.Duration)
	ObservePass(attempted, failed, fixtures int, elapsed time.Duration)
	WarmupCompleted(fixtures int, err error)
	CircuitStateChanged(dependency, state string)
}

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeFailed
	}
	return OutcomeSuccess
}
