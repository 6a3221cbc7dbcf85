package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Order command statuses. A rejected command ran to completion but its
// preconditions failed, so the order carries a result of zero or below.
const (
	StatusSucceeded = "succeeded"
	StatusRejected  = "rejected"
	StatusError     = "error"
)

// CommandMetricsCollector tracks the order commands dispatched by the mediator
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Time spent handling one order command",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.25},
			},
			[]string{"command"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Order commands handled, by command and status",
			},
			[]string{"command", "status"},
		),
	}
}

// Register adds the collector to the engine registry. It is a no-op while
// metrics are disabled.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, metric := range []prometheus.Collector{c.commandDuration, c.commandsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommand counts one handled command under status
func (c *CommandMetricsCollector) RecordCommand(command string, seconds float64, status string) {
	c.commandDuration.WithLabelValues(command).Observe(seconds)
	c.commandsTotal.WithLabelValues(command, status).Inc()
}
