// SPDX-License-Identifier: MIT

// Package config resolves the harness configuration from defaults, an
// optional YAML file, LVBENCH_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvbench/bench"
	"github.com/katalvlaran/lvbench/provider"
)

// EnvPrefix prefixes every environment override, e.g. LVBENCH_FORMAT=json.
const EnvPrefix = "LVBENCH"

var (
	// ErrInvalidArgs indicates malformed positional arguments.
	ErrInvalidArgs = errors.New("config: invalid arguments")
	// ErrInvalidConfig indicates an out-of-range configuration value.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Keys of every setting; flags use the same names with '-' for '_'.
const (
	KeyFormat       = "format"
	KeyDump         = "dump"
	KeyMetricsFile  = "metrics_file"
	KeyNoCheck      = "no_check"
	KeyLogLevel     = "log_level"
	KeyPattern      = "pattern"
	KeySeed         = "seed"
	KeyMaxNaiveN    = "max_naive_n"
	KeyNaiveDivisor = "naive_divisor"
	KeyRtol         = "rtol"
	KeyAtol         = "atol"
)

// Config is the effective configuration of one invocation.
type Config struct {
	Format      string  `mapstructure:"format" yaml:"format"`
	Dump        bool    `mapstructure:"dump" yaml:"dump"`
	MetricsFile string  `mapstructure:"metrics_file" yaml:"metrics_file"`
	NoCheck     bool    `mapstructure:"no_check" yaml:"no_check"`
	LogLevel    string  `mapstructure:"log_level" yaml:"log_level"`
	Pattern     string  `mapstructure:"pattern" yaml:"pattern"`
	Seed        int64   `mapstructure:"seed" yaml:"seed"`
	MaxNaiveN   int     `mapstructure:"max_naive_n" yaml:"max_naive_n"`     // -1: case default, 0: no limit
	NaiveDiv    int     `mapstructure:"naive_divisor" yaml:"naive_divisor"` // 0: case default
	Rtol        float64 `mapstructure:"rtol" yaml:"rtol"`
	Atol        float64 `mapstructure:"atol" yaml:"atol"`
}

// SetDefaults installs the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFormat, FormatText)
	v.SetDefault(KeyDump, false)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyNoCheck, false)
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyPattern, string(provider.PatternToeplitz))
	v.SetDefault(KeySeed, provider.DefaultSeed)
	v.SetDefault(KeyMaxNaiveN, -1)
	v.SetDefault(KeyNaiveDivisor, 0)
	v.SetDefault(KeyRtol, bench.DefaultTolerance.Rtol)
	v.SetDefault(KeyAtol, bench.DefaultTolerance.Atol)
}

// New returns a viper instance with defaults and environment lookup installed.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func flagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

// RegisterFlags declares one flag per key on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagName(KeyFormat), FormatText, "report format: text or json")
	fs.Bool(flagName(KeyDump), false, "print the final vector of every variant")
	fs.String(flagName(KeyMetricsFile), "", "write Prometheus textfile metrics to this path")
	fs.Bool(flagName(KeyNoCheck), false, "time only; skip the consistency check")
	fs.String(flagName(KeyLogLevel), zerolog.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
	fs.String(flagName(KeyPattern), string(provider.PatternToeplitz), "dense value pattern: toeplitz or random")
	fs.Int64(flagName(KeySeed), provider.DefaultSeed, "seed of the random pattern")
	fs.Int(flagName(KeyMaxNaiveN), -1, "skip naive variants at n >= this (0: never, -1: case default)")
	fs.Int(flagName(KeyNaiveDivisor), 0, "divide naive repetitions by this (0: case default)")
	fs.Float64(flagName(KeyRtol), bench.DefaultTolerance.Rtol, "relative tolerance of the consistency check")
	fs.Float64(flagName(KeyAtol), bench.DefaultTolerance.Atol, "absolute tolerance of the consistency check")
}

// BindFlags binds every registered flag of fs to its key on v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeyFormat, KeyDump, KeyMetricsFile, KeyNoCheck, KeyLogLevel, KeyPattern,
		KeySeed, KeyMaxNaiveN, KeyNaiveDivisor, KeyRtol, KeyAtol,
	} {
		f := fs.Lookup(flagName(key))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config.BindFlags(%s): %w", key, err)
		}
	}

	return nil
}

// Load reads the optional YAML file, decodes v into a Config and validates it.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load(%q): %w", file, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate rejects values no run can use.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("format %q: %w", c.Format, ErrInvalidConfig)
	}
	switch provider.Pattern(c.Pattern) {
	case provider.PatternToeplitz, provider.PatternRandom:
	default:
		return fmt.Errorf("pattern %q: %w", c.Pattern, ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	if c.Rtol < 0 || c.Atol < 0 {
		return fmt.Errorf("tolerance rtol=%g atol=%g: %w", c.Rtol, c.Atol, ErrInvalidConfig)
	}
	if c.MaxNaiveN < -1 || c.NaiveDiv < 0 {
		return fmt.Errorf("naive policy max_n=%d divisor=%d: %w", c.MaxNaiveN, c.NaiveDiv, ErrInvalidConfig)
	}

	return nil
}

// Level returns the parsed log level; Validate guarantees it parses.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Tolerance returns the consistency check bounds.
func (c *Config) Tolerance() bench.Tolerance {
	return bench.Tolerance{Rtol: c.Rtol, Atol: c.Atol}
}

// Policy applies the naive overrides to a case default.
func (c *Config) Policy(def bench.Policy) bench.Policy {
	p := def
	if c.MaxNaiveN >= 0 {
		p.MaxN = c.MaxNaiveN
	}
	if c.NaiveDiv > 0 {
		p.RepsDivisor = c.NaiveDiv
	}

	return p
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config.YAML: %w", err)
	}

	return out, nil
}

// ParseArgs parses the two positional arguments <size> <reps>.
// Size validation is left to the provider; reps must be >= 0.
func ParseArgs(args []string) (size, reps int, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want <size> <reps>, got %d arguments: %w", len(args), ErrInvalidArgs)
	}
	if size, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", args[0], ErrInvalidArgs)
	}
	if reps, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("reps %q: %w", args[1], ErrInvalidArgs)
	}
	if reps < 0 {
		return 0, 0, fmt.Errorf("reps %d: %w", reps, ErrInvalidArgs)
	}

	return size, reps, nil
}
