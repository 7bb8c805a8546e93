package metrics

import "time"

// NoopSink is used when metrics are disabled.
type NoopSink struct{}

func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (n *NoopSink) ObserveCompetition(path string, fixtures int, err error, d time.Duration) {}
func (n *NoopSink) ObservePass(attempted, failed, fixtures int, d time.Duration)             {}
func (n *NoopSink) WarmupCompleted(fixtures int, err error)                                  {}
func (n *NoopSink) CircuitStateChanged(dependency, state string)                             {}
