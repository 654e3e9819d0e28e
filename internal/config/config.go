// Package config loads solver configuration for the highslp command.
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables with the HIGHS_ prefix (HIGHS_USER_COST_SCALE)
//  3. A YAML config file
//  4. Default values (lowest priority)
//
// Keys are the solver option names (user_bound_scale, time_limit, ...) plus
// log_level and log_development.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/bartolsthoorn/highslp/highs"
	"github.com/bartolsthoorn/highslp/internal/logging"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "HIGHS"

// Config holds the solver options and logging settings.
type Config struct {
	OutputFlag                 bool    `mapstructure:"output_flag"`
	TimeLimit                  float64 `mapstructure:"time_limit"`
	MIPAbsGap                  float64 `mapstructure:"mip_abs_gap"`
	MIPRelGap                  float64 `mapstructure:"mip_rel_gap"`
	Presolve                   string  `mapstructure:"presolve"`
	PrimalFeasibilityTolerance float64 `mapstructure:"primal_feasibility_tolerance"`
	DualFeasibilityTolerance   float64 `mapstructure:"dual_feasibility_tolerance"`
	UserBoundScale             int     `mapstructure:"user_bound_scale"`
	UserCostScale              int     `mapstructure:"user_cost_scale"`

	LogLevel       string `mapstructure:"log_level"`
	LogDevelopment bool   `mapstructure:"log_development"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"output":           highs.OptionOutputFlag,
	"time-limit":       highs.OptionTimeLimit,
	"presolve":         highs.OptionPresolve,
	"user-bound-scale": highs.OptionUserBoundScale,
	"user-cost-scale":  highs.OptionUserCostScale,
	"log-level":        "log_level",
	"log-development":  "log_development",
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	defaults := highs.DefaultOptions()
	fs.Bool("output", defaults.OutputFlag, "log solver progress at info level")
	fs.Float64("time-limit", defaults.TimeLimit, "time limit in seconds")
	fs.String("presolve", defaults.Presolve, "presolve mode: off, choose or on")
	fs.Int("user-bound-scale", 0, "scale bounds and primal values by 2^N")
	fs.Int("user-cost-scale", 0, "scale costs and dual values by 2^N")
	fs.String("log-level", "info", "log verbosity: info, debug or trace")
	fs.Bool("log-development", false, "use the human-readable log encoder")
}

// Load reads the configuration. path may be empty for no config file; fs
// may be nil when there are no flags.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logging.Log().V(logging.DEBUG).Info("Loaded configuration",
		"file", path, "userBoundScale", c.UserBoundScale, "userCostScale", c.UserCostScale)
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	d := highs.DefaultOptions()
	v.SetDefault(highs.OptionOutputFlag, d.OutputFlag)
	v.SetDefault(highs.OptionTimeLimit, d.TimeLimit)
	v.SetDefault(highs.OptionMIPAbsGap, d.MIPAbsGap)
	v.SetDefault(highs.OptionMIPRelGap, d.MIPRelGap)
	v.SetDefault(highs.OptionPresolve, d.Presolve)
	v.SetDefault(highs.OptionPrimalFeasibilityTolerance, d.PrimalFeasibilityTolerance)
	v.SetDefault(highs.OptionDualFeasibilityTolerance, d.DualFeasibilityTolerance)
	v.SetDefault(highs.OptionUserBoundScale, d.UserBoundScale)
	v.SetDefault(highs.OptionUserCostScale, d.UserCostScale)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
}

// Validate checks for invalid configuration values. Every problem is
// reported.
func (c *Config) Validate() error {
	var err error
	if math.IsNaN(c.TimeLimit) || c.TimeLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("time_limit must be >= 0, got %g", c.TimeLimit))
	}
	for name, v := range map[string]float64{
		highs.OptionMIPAbsGap:                  c.MIPAbsGap,
		highs.OptionMIPRelGap:                  c.MIPRelGap,
		highs.OptionPrimalFeasibilityTolerance: c.PrimalFeasibilityTolerance,
		highs.OptionDualFeasibilityTolerance:   c.DualFeasibilityTolerance,
	} {
		if math.IsNaN(v) || v < 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be >= 0, got %g", name, v))
		}
	}
	switch c.Presolve {
	case "off", "choose", "on":
	default:
		err = multierr.Append(err, fmt.Errorf("presolve must be off, choose or on, got %q", c.Presolve))
	}
	for name, v := range map[string]int{
		highs.OptionUserBoundScale: c.UserBoundScale,
		highs.OptionUserCostScale:  c.UserCostScale,
	} {
		if v < highs.MinUserScaleExponent || v > highs.MaxUserScaleExponent {
			err = multierr.Append(err, fmt.Errorf("%s must be in [%d, %d], got %d",
				name, highs.MinUserScaleExponent, highs.MaxUserScaleExponent, v))
		}
	}
	if _, lerr := logging.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	return err
}

// SolveOptions returns the solver options of c.
func (c *Config) SolveOptions() []highs.SolveOption {
	return []highs.SolveOption{
		highs.WithOutput(c.OutputFlag),
		highs.WithTimeLimit(c.TimeLimit),
		highs.WithMIPAbsGap(c.MIPAbsGap),
		highs.WithMIPRelGap(c.MIPRelGap),
		highs.WithPresolve(c.Presolve),
		highs.WithFloatOption(highs.OptionPrimalFeasibilityTolerance, c.PrimalFeasibilityTolerance),
		highs.WithFloatOption(highs.OptionDualFeasibilityTolerance, c.DualFeasibilityTolerance),
		highs.WithUserBoundScale(c.UserBoundScale),
		highs.WithUserCostScale(c.UserCostScale),
	}
}

// Logger builds the zap-backed logger described by c.
func (c *Config) Logger() (logr.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logr.Logger{}, err
	}
	return logging.NewLogger(level, c.LogDevelopment)
}
