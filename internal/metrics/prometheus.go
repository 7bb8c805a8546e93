package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/riskibarqy/livescore-aggregator/internal/platform/logging"
)

// PrometheusSink implements Sink with the Prometheus client. Registration failures are
// logged and the affected collector keeps working unregistered.
type PrometheusSink struct {
	competitionFetchesTotal *prometheus.CounterVec
	competitionDuration     prometheus.Histogram
	fixturesTotal           prometheus.Counter

	passesTotal       prometheus.Counter
	passDuration      prometheus.Histogram
	lastPassAttempted prometheus.Gauge
	lastPassFailed    prometheus.Gauge

	warmupsTotal *prometheus.CounterVec

	circuitState       *prometheus.GaugeVec
	circuitTransitions *prometheus.CounterVec

	logger *logging.Logger
}

func NewPrometheusSink(reg prometheus.Registerer, logger *logging.Logger) *PrometheusSink {
	if logger == nil {
		logger = logging.Default()
	}
	s := &PrometheusSink{logger: logger}
	s.initCompetitionMetrics(reg)
	s.initPassMetrics(reg)
	s.initWarmupMetrics(reg)
	s.initCircuitMetrics(reg)
	return s
}

func (s *PrometheusSink) initCompetitionMetrics(reg prometheus.Registerer) {
	s.competitionFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "livescore_competition_fetches_total",
		Help: "Total number of competition pipeline runs by outcome.",
	}, []string{"outcome"})
	s.competitionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "livescore_competition_fetch_duration_seconds",
		Help:    "Duration of one competition fetch, overlay and normalization.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
	s.fixturesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "livescore_fixtures_normalized_total",
		Help: "Total number of fixtures produced by competition pipelines.",
	})

	s.register(reg, s.competitionFetchesTotal, "livescore_competition_fetches_total")
	s.register(reg, s.competitionDuration, "livescore_competition_fetch_duration_seconds")
	s.register(reg, s.fixturesTotal, "livescore_fixtures_normalized_total")
}

func (s *PrometheusSink) initPassMetrics(reg prometheus.Registerer) {
	s.passesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "livescore_aggregation_passes_total",
		Help: "Total number of aggregation passes.",
	})
	s.passDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "livescore_aggregation_pass_duration_seconds",
		Help:    "Duration of one aggregation pass over all requested competitions.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})
	s.lastPassAttempted = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "livescore_aggregation_last_pass_attempted",
		Help: "Competitions attempted by the most recent pass.",
	})
	s.lastPassFailed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "livescore_aggregation_last_pass_failed",
		Help: "Competitions that failed in the most recent pass.",
	})

	s.register(reg, s.passesTotal, "livescore_aggregation_passes_total")
	s.register(reg, s.passDuration, "livescore_aggregation_pass_duration_seconds")
	s.register(reg, s.lastPassAttempted, "livescore_aggregation_last_pass_attempted")
	s.register(reg, s.lastPassFailed, "livescore_aggregation_last_pass_failed")
}

func (s *PrometheusSink) initWarmupMetrics(reg prometheus.Registerer) {
	s.warmupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "livescore_cache_warmups_total",
		Help: "Total number of scheduled cache warm-up runs by outcome.",
	}, []string{"outcome"})

	s.register(reg, s.warmupsTotal, "livescore_cache_warmups_total")
}

func (s *PrometheusSink) initCircuitMetrics(reg prometheus.Registerer) {
	s.circuitState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "livescore_circuit_state",
		Help: "Upstream circuit breaker state: 0 closed, 1 half-open, 2 open.",
	}, []string{"dependency"})
	s.circuitTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "livescore_circuit_transitions_total",
		Help: "Total number of circuit breaker transitions by target state.",
	}, []string{"dependency", "state"})

	s.register(reg, s.circuitState, "livescore_circuit_state")
	s.register(reg, s.circuitTransitions, "livescore_circuit_transitions_total")
}

func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if reg == nil {
		return
	}
	if err := reg.Register(c); err != nil {
		s.logger.Warn("metrics: failed to register collector", "name", name, "error", err)
	}
}

func (s *PrometheusSink) ObserveCompetition(_ string, fixtures int, err error, elapsed time.Duration) {
	s.competitionFetchesTotal.WithLabelValues(outcomeOf(err)).Inc()
	s.competitionDuration.Observe(elapsed.Seconds())
	if fixtures > 0 {
		s.fixturesTotal.Add(float64(fixtures))
	}
}

func (s *PrometheusSink) ObservePass(attempted, failed, _ int, elapsed time.Duration) {
	s.passesTotal.Inc()
	s.passDuration.Observe(elapsed.Seconds())
	s.lastPassAttempted.Set(float64(attempted))
	s.lastPassFailed.Set(float64(failed))
}

func (s *PrometheusSink) WarmupCompleted(_ int, err error) {
	s.warmupsTotal.WithLabelValues(outcomeOf(err)).Inc()
}

func (s *PrometheusSink) CircuitStateChanged(dependency, state string) {
	s.circuitTransitions.WithLabelValues(dependency, state).Inc()
	s.circuitState.WithLabelValues(dependency).Set(circuitStateValue(state))
}

func circuitStateValue(state string) float64 {
	switch state {
	case "open":
		return 2
	case "half_open":
		return 1
	default:
		return 0
	}
}
