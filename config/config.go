package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "OPTSTRUCT_"

// Config carries defaults for the command line. Flags override it.
type Config struct {
	RiskFreeRate  float64
	DividendYield float64
	SimPaths      int
	SimSeed       uint64
	LogLevel      string
	Output        string
}

func Defaults() Config {
	return Config{
		RiskFreeRate: 0.0379,
		SimPaths:     100000,
		SimSeed:      1,
		LogLevel:     "info",
		Output:       "table",
	}
}

// Load reads the given .env files (a missing file is fine) and then the
// process environment.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Defaults()
	var err error

	if cfg.RiskFreeRate, err = floatVar(getenv, "RISK_FREE_RATE", cfg.RiskFreeRate); err != nil {
		return Config{}, err
	}
	if cfg.DividendYield, err = floatVar(getenv, "DIVIDEND_YIELD", cfg.DividendYield); err != nil {
		return Config{}, err
	}
	if v := getenv(envPrefix + "SIM_PATHS"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n <= 0 {
			return Config{}, fmt.Errorf("%sSIM_PATHS=%q: must be a positive integer", envPrefix, v)
		}
		cfg.SimPaths = n
	}
	if v := getenv(envPrefix + "SIM_SEED"); v != "" {
		n, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return Config{}, fmt.Errorf("%sSIM_SEED=%q: %w", envPrefix, v, perr)
		}
		cfg.SimSeed = n
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getenv(envPrefix + "OUTPUT"); v != "" {
		v = strings.ToLower(v)
		if v != "table" && v != "json" {
			return Config{}, fmt.Errorf("%sOUTPUT=%q: want table or json", envPrefix, v)
		}
		cfg.Output = v
	}
	return cfg, nil
}

func floatVar(getenv func(string) string, name string, def float64) (float64, error) {
	v := getenv(envPrefix + name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s%s=%q: %w", envPrefix, name, v, err)
	}
	return f, nil
}
