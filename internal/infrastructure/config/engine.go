package config

// EngineConfig controls turn resolution
type EngineConfig struct {
	// Game resolved when a command gives no --game flag
	Game int `mapstructure:"game" validate:"min=0"`

	// Seed of the random source. Zero derives a seed from game and turn, so
	// a replay of the same turn draws the same numbers.
	Seed uint64 `mapstructure:"seed"`

	// Optional YAML file overriding the embedded balance catalog
	TuningPath string `mapstructure:"tuning_path" validate:"omitempty,file"`

	// Abort the turn when a phase leaves a negative ledger cell instead of
	// logging it and continuing
	FailFast bool `mapstructure:"fail_fast"`

	// PID file held while a command writes to the database. Empty disables
	// the lock.
	LockFile string `mapstructure:"lock_file"`
}
