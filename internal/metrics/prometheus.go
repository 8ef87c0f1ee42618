// Package metrics exposes the clocks to Prometheus.
package metrics

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/longhd1308/ClockApp/internal/domain"
)

// SnapshotFunc returns the live state to export on each scrape.
type SnapshotFunc func() domain.Snapshot

// PrometheusMetrics provides Prometheus metrics for the stopwatch and timer.
type PrometheusMetrics struct {
	snapshot SnapshotFunc

	// Live state, refreshed on Collect
	stopwatchElapsed *prometheus.GaugeVec
	timerRemaining   *prometheus.GaugeVec
	runState         *prometheus.GaugeVec

	// Event counters
	commandsTotal    *prometheus.CounterVec
	completionsTotal prometheus.Counter
	alertErrors      prometheus.Counter

	mu sync.Mutex
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance reading from snapshot.
func NewPrometheusMetrics(snapshot SnapshotFunc) *PrometheusMetrics {
	return &PrometheusMetrics{
		snapshot: snapshot,
		stopwatchElapsed: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clockapp_stopwatch_elapsed_seconds",
				Help: "Elapsed ticks shown by the stopwatch",
			},
			nil,
		),
		timerRemaining: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clockapp_timer_remaining_seconds",
				Help: "Remaining ticks on the countdown timer",
			},
			[]string{"configured"},
		),
		runState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "clockapp_run_state",
				Help: "1 for the current run state of each mode, 0 otherwise",
			},
			[]string{"mode", "state"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clockapp_commands_total",
				Help: "Commands received by mode, command and result",
			},
			[]string{"mode", "command", "result"},
		),
		completionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clockapp_timer_completions_total",
				Help: "Countdowns that reached zero",
			},
		),
		alertErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "clockapp_alert_errors_total",
				Help: "Completion alerts that failed",
			},
		),
	}
}

// Describe implements prometheus.Collector.
func (pm *PrometheusMetrics) Describe(ch chan<- *prometheus.Desc) {
	pm.stopwatchElapsed.Describe(ch)
	pm.timerRemaining.Describe(ch)
	pm.runState.Describe(ch)
	pm.commandsTotal.Describe(ch)
	pm.completionsTotal.Describe(ch)
	pm.alertErrors.Describe(ch)
}

// Collect implements prometheus.Collector and refreshes the gauges from the snapshot.
func (pm *PrometheusMetrics) Collect(ch chan<- prometheus.Metric) {
	pm.mu.Lock()
	pm.collectState()
	pm.mu.Unlock()

	pm.stopwatchElapsed.Collect(ch)
	pm.timerRemaining.Collect(ch)
	pm.runState.Collect(ch)
	pm.commandsTotal.Collect(ch)
	pm.completionsTotal.Collect(ch)
	pm.alertErrors.Collect(ch)
}

func (pm *PrometheusMetrics) collectState() {
	if pm.snapshot == nil {
		return
	}
	snap := pm.snapshot()

	pm.stopwatchElapsed.WithLabelValues().Set(float64(snap.Stopwatch.ElapsedSeconds))

	pm.timerRemaining.Reset()
	configured := domain.FormatTimer(snap.Timer.ConfiguredDuration)
	pm.timerRemaining.WithLabelValues(configured).Set(float64(snap.Timer.RemainingSeconds))

	pm.runState.Reset()
	for _, s := range []domain.RunState{domain.StateIdle, domain.StateRunning, domain.StatePaused} {
		pm.runState.WithLabelValues(string(domain.ModeStopwatch), s.String()).Set(boolGauge(snap.Stopwatch.State == s.String()))
		pm.runState.WithLabelValues(string(domain.ModeTimer), s.String()).Set(boolGauge(snap.Timer.State == s.String()))
	}
}

// ObserveCommand counts one command and its outcome.
func (pm *PrometheusMetrics) ObserveCommand(mode domain.Mode, cmd domain.Command, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrIllegalCommand):
		result = "illegal"
	default:
		result = "error"
	}
	pm.commandsTotal.WithLabelValues(string(mode), cmd.String(), result).Inc()
}

// Alerter wraps next so that every countdown completion is counted.
func (pm *PrometheusMetrics) Alerter(next domain.Alerter) domain.Alerter {
	return &countingAlerter{pm: pm, next: next}
}

type countingAlerter struct {
	pm   *PrometheusMetrics
	next domain.Alerter
}

func (c *countingAlerter) Alert(lang domain.Language) error {
	c.pm.completionsTotal.Inc()
	if c.next == nil {
		return nil
	}
	err := c.next.Alert(lang)
	if err != nil {
		c.pm.alertErrors.Inc()
	}
	return err
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
