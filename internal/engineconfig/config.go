// Package engineconfig loads the engine's runtime tunables from the
// environment via viper, grounded on the platform's config package.
package engineconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// RuntimeConfig holds the knobs that shape a simulation batch without
// changing its statistical model: how many runs to execute, how many
// workers to run them with, the live-state decay exponent, the RNG
// base seed, and the per-run wall-clock budget used to log an
// SLO-miss warning.
type RuntimeConfig struct {
	SimulationsPerUpdate int     `mapstructure:"SIMULATIONS_PER_UPDATE"`
	WorkerThreads        int     `mapstructure:"WORKER_THREADS"`
	LiveStateGamma       float64 `mapstructure:"LIVE_STATE_GAMMA"`
	RNGBaseSeed          uint64  `mapstructure:"RNG_BASE_SEED"`
	SimulationSLOMs      int     `mapstructure:"SIMULATION_SLO_MS"`
}

// Load reads RuntimeConfig from the environment, applying the same
// defaults the engine uses when embedded as a library rather than run
// standalone.
func Load() (*RuntimeConfig, error) {
	v := viper.New()
	v.SetDefault("SIMULATIONS_PER_UPDATE", 10000)
	v.SetDefault("WORKER_THREADS", 0) // 0 means "use runtime.NumCPU()"
	v.SetDefault("LIVE_STATE_GAMMA", 0.7)
	v.SetDefault("RNG_BASE_SEED", uint64(1))
	v.SetDefault("SIMULATION_SLO_MS", 5000)
	v.AutomaticEnv()

	var cfg RuntimeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("engineconfig: unable to decode runtime config: %w", err)
	}
	return &cfg, nil
}
