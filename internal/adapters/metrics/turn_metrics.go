package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// TurnMetricsCollector handles economy phase, production, attrition and order metrics
type TurnMetricsCollector struct {
	phaseDuration  *prometheus.HistogramVec
	phasesTotal    *prometheus.CounterVec
	goodsProduced  *prometheus.CounterVec
	attritionTotal *prometheus.CounterVec
	ordersTotal    *prometheus.CounterVec
	turnDuration   *prometheus.HistogramVec
}

// NewTurnMetricsCollector creates a new turn metrics collector
func NewTurnMetricsCollector() *TurnMetricsCollector {
	return &TurnMetricsCollector{
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "phase_duration_seconds",
				Help:      "Economy phase duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"phase", "status"},
		),
		phasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "phases_total",
				Help:      "Total number of economy phases run by phase and status",
			},
			[]string{"phase", "status"},
		),
		goodsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goods_produced_total",
				Help:      "Goods produced by production sites",
			},
			[]string{"nation", "good"},
		),
		attritionTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "attrition_total",
				Help:      "Units lost to unpaid upkeep or starvation",
			},
			[]string{"kind", "nation"},
		),
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_total",
				Help:      "Orders processed by type and result",
			},
			[]string{"type", "result"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "turn_duration_seconds",
				Help:      "Full turn processing duration",
				Buckets:   []float64{0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0, 120.0},
			},
			[]string{"game", "status"},
		),
	}
}

// Register registers all turn metrics with the Prometheus registry
func (c *TurnMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.phaseDuration,
		c.phasesTotal,
		c.goodsProduced,
		c.attritionTotal,
		c.ordersTotal,
		c.turnDuration,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *TurnMetricsCollector) RecordPhase(phase string, duration float64, success bool) {
	status := statusLabel(success)
	c.phaseDuration.WithLabelValues(phase, status).Observe(duration)
	c.phasesTotal.WithLabelValues(phase, status).Inc()
}

func (c *TurnMetricsCollector) RecordProduction(nation string, good string, quantity int) {
	c.goodsProduced.WithLabelValues(nation, good).Add(float64(quantity))
}

func (c *TurnMetricsCollector) RecordAttrition(kind string, nation string, lost int) {
	c.attritionTotal.WithLabelValues(kind, nation).Add(float64(lost))
}

func (c *TurnMetricsCollector) RecordOrder(orderType string, succeeded bool) {
	result := "success"
	if !succeeded {
		result = "failure"
	}
	c.ordersTotal.WithLabelValues(orderType, result).Inc()
}

func (c *TurnMetricsCollector) RecordTurn(game int, duration float64, success bool) {
	c.turnDuration.WithLabelValues(strconv.Itoa(game), statusLabel(success)).Observe(duration)
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
