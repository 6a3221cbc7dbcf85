package config

// MetricsConfig holds metrics collection configuration. The engine runs as
// a batch job, so metrics are written to a textfile for node_exporter rather
// than served over HTTP.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath receives the registry in Prometheus text format after each run
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
