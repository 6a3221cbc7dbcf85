package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "empire"
	// Subsystem for turn engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalTurnCollector is the singleton turn metrics collector
	// Set by SetGlobalTurnCollector() when metrics are enabled
	globalTurnCollector TurnMetricsRecorder
)

// TurnMetricsRecorder defines the interface for recording turn processing events.
// Application code records through the package level functions below.
type TurnMetricsRecorder interface {
	RecordPhase(phase string, duration float64, success bool)
	RecordProduction(nation string, good string, quantity int)
	RecordAttrition(kind string, nation string, lost int)
	RecordOrder(orderType string, succeeded bool)
	RecordTurn(game int, duration float64, success bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalTurnCollector sets the global turn metrics collector
func SetGlobalTurnCollector(collector TurnMetricsRecorder) {
	globalTurnCollector = collector
}

// RecordPhase records the duration and outcome of an economy phase
func RecordPhase(phase string, duration float64, success bool) {
	if globalTurnCollector != nil {
		globalTurnCollector.RecordPhase(phase, duration, success)
	}
}

// RecordProduction records goods produced by production sites
func RecordProduction(nation string, good string, quantity int) {
	if globalTurnCollector != nil && quantity > 0 {
		globalTurnCollector.RecordProduction(nation, good, quantity)
	}
}

// RecordAttrition records soldiers, ships, commanders or trains lost to upkeep failures
func RecordAttrition(kind string, nation string, lost int) {
	if globalTurnCollector != nil && lost > 0 {
		globalTurnCollector.RecordAttrition(kind, nation, lost)
	}
}

// RecordOrder records a processed order by type and outcome
func RecordOrder(orderType string, succeeded bool) {
	if globalTurnCollector != nil {
		globalTurnCollector.RecordOrder(orderType, succeeded)
	}
}

// RecordTurn records a complete turn run
func RecordTurn(game int, duration float64, success bool) {
	if globalTurnCollector != nil {
		globalTurnCollector.RecordTurn(game, duration, success)
	}
}
