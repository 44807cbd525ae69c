package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"OPTSTRUCT_RISK_FREE_RATE": "0.05",
		"OPTSTRUCT_DIVIDEND_YIELD": "0.012",
		"OPTSTRUCT_SIM_PATHS":      "5000",
		"OPTSTRUCT_SIM_SEED":       "99",
		"OPTSTRUCT_LOG_LEVEL":      "DEBUG",
		"OPTSTRUCT_OUTPUT":         "JSON",
	}))
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.RiskFreeRate)
	assert.Equal(t, 0.012, cfg.DividendYield)
	assert.Equal(t, 5000, cfg.SimPaths)
	assert.Equal(t, uint64(99), cfg.SimSeed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Output)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	bad := []map[string]string{
		{"OPTSTRUCT_RISK_FREE_RATE": "five"},
		{"OPTSTRUCT_DIVIDEND_YIELD": "1%"},
		{"OPTSTRUCT_SIM_PATHS": "-3"},
		{"OPTSTRUCT_SIM_SEED": "seed"},
		{"OPTSTRUCT_OUTPUT": "xml"},
	}
	for _, env := range bad {
		_, err := FromEnv(envMap(env))
		assert.Error(t, err, env)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPTSTRUCT_SIM_PATHS=1234\n"), 0o600))
	t.Setenv("OPTSTRUCT_SIM_PATHS", "")
	os.Unsetenv("OPTSTRUCT_SIM_PATHS")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.SimPaths)
}
