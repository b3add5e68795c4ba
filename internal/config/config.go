// Package config resolves solver configuration from a YAML file with
// environment-variable overrides, grounded on
// steveyegge-beads/internal/labelmutex's viper.New()/SetConfigFile/
// ReadInConfig pattern: one throwaway *viper.Viper per Load call rather
// than a shared package-level instance, so concurrent callers (or tests)
// never fight over global state.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/dd"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/forward"
	"github.com/TUE-EE-ES/modular-flow-shop-scheduler-sub000/schedule"
)

// Environment variable prefix for every override: SCHEDULER_STRATEGY,
// SCHEDULER_BUDGET, SCHEDULER_DD_POLICY, and so on.
const envPrefix = "SCHEDULER"

// Solver is the resolved configuration for one schedule.Solve call.
type Solver struct {
	Strategy schedule.Strategy
	Weights  forward.Weights
	DDPolicy dd.Policy
	Budget   time.Duration
}

// Load resolves a Solver from path (if it exists), then lets
// SCHEDULER_-prefixed environment variables override any key, falling
// back to DefaultSolver for anything neither source sets.
func Load(path string) (*Solver, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	return &Solver{
		Strategy: schedule.Strategy(v.GetString("strategy")),
		Weights: forward.Weights{
			Flex: v.GetFloat64("weights.flex"),
			Prod: v.GetFloat64("weights.prod"),
			Tie:  v.GetFloat64("weights.tie"),
		},
		DDPolicy: dd.Policy(v.GetString("dd-policy")),
		Budget:   v.GetDuration("budget"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultSolver()
	v.SetDefault("strategy", string(def.Strategy))
	v.SetDefault("weights.flex", def.Weights.Flex)
	v.SetDefault("weights.prod", def.Weights.Prod)
	v.SetDefault("weights.tie", def.Weights.Tie)
	v.SetDefault("dd-policy", string(def.DDPolicy))
	v.SetDefault("budget", def.Budget)
}

// DefaultSolver mirrors schedule.DefaultOptions, expressed as a Solver
// so Load has something to fall back to with no file and no
// environment overrides present.
func DefaultSolver() *Solver {
	opts := schedule.DefaultOptions()
	return &Solver{
		Strategy: opts.Strategy,
		Weights:  opts.Weights,
		DDPolicy: opts.DDPolicy,
		Budget:   0,
	}
}

// ToOptions converts s into the schedule.Options Solve expects.
func (s *Solver) ToOptions() schedule.Options {
	return schedule.Options{
		Strategy: s.Strategy,
		Weights:  s.Weights,
		DDPolicy: s.DDPolicy,
		Budget:   s.Budget,
	}
}
