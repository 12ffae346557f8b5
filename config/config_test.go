package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvbench/bench"
	"github.com/katalvlaran/lvbench/config"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	require.Equal(t, config.FormatText, c.Format)
	require.Equal(t, "toeplitz", c.Pattern)
	require.Equal(t, int64(1337), c.Seed)
	require.False(t, c.NoCheck)
	require.Equal(t, zerolog.InfoLevel, c.Level())
	require.Equal(t, bench.DefaultTolerance, c.Tolerance())
	require.Equal(t, bench.DefaultDensePolicy, c.Policy(bench.DefaultDensePolicy))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LVBENCH_FORMAT", "json")
	t.Setenv("LVBENCH_MAX_NAIVE_N", "0")
	t.Setenv("LVBENCH_RTOL", "1e-8")

	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	require.Equal(t, config.FormatJSON, c.Format)
	require.Equal(t, 1e-8, c.Rtol)
	require.Equal(t, bench.Policy{MaxN: 0, RepsDivisor: 100}, c.Policy(bench.DefaultDensePolicy))
}

func TestLoad_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lvbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pattern: random\nnaive_divisor: 10\ndump: true\n"), 0o600))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--naive-divisor=4", "--no-check"}))

	v := config.New()
	require.NoError(t, config.BindFlags(v, fs))
	c, err := config.Load(v, path)
	require.NoError(t, err)
	require.Equal(t, "random", c.Pattern)
	require.True(t, c.Dump)
	require.True(t, c.NoCheck)
	require.Equal(t, 4, c.NaiveDiv)
	require.Equal(t, bench.Policy{MaxN: 300, RepsDivisor: 4}, c.Policy(bench.DefaultSparsePolicy))
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	for key, val := range map[string]any{
		config.KeyFormat:    "xml",
		config.KeyPattern:   "hilbert",
		config.KeyLogLevel:  "loud",
		config.KeyAtol:      -1.0,
		config.KeyMaxNaiveN: -5,
	} {
		v := config.New()
		v.Set(key, val)
		_, err := config.Load(v, "")
		require.ErrorIs(t, err, config.ErrInvalidConfig, key)
	}
}

func TestConfig_YAML(t *testing.T) {
	c, err := config.Load(config.New(), "")
	require.NoError(t, err)
	out, err := c.YAML()
	require.NoError(t, err)

	var back config.Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, *c, back)
	require.Contains(t, string(out), "max_naive_n: -1")
}

func TestParseArgs(t *testing.T) {
	size, reps, err := config.ParseArgs([]string{"100", "50"})
	require.NoError(t, err)
	require.Equal(t, 100, size)
	require.Equal(t, 50, reps)

	for _, args := range [][]string{
		{"100"},
		{"100", "50", "1"},
		{"ten", "50"},
		{"100", "1.5"},
		{"100", "-1"},
	} {
		_, _, err := config.ParseArgs(args)
		require.ErrorIs(t, err, config.ErrInvalidArgs, "%v", args)
	}

	// size is range-checked by the provider, not here
	size, _, err = config.ParseArgs([]string{"-3", "0"})
	require.NoError(t, err)
	require.Equal(t, -3, size)
}
