// Package config loads the server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvAddr            = "GOSHAFT_ADDR"
	EnvRate            = "GOSHAFT_RATE"
	EnvBurst           = "GOSHAFT_BURST"
	EnvCacheSize       = "GOSHAFT_CACHE_SIZE"
	EnvMaxBatch        = "GOSHAFT_MAX_BATCH"
	EnvCORSOrigin      = "GOSHAFT_CORS_ORIGIN"
	EnvLogLevel        = "GOSHAFT_LOG_LEVEL"
	EnvLogFormat       = "GOSHAFT_LOG_FORMAT"
	EnvShutdownTimeout = "GOSHAFT_SHUTDOWN_TIMEOUT"
)

// Config holds the settings of the HTTP service
type Config struct {
	Addr            string
	Rate            float64 // requests per second per client
	Burst           int
	CacheSize       int
	MaxBatch        int
	CORSOrigin      string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            ":8080",
		Rate:            5,
		Burst:           10,
		CacheSize:       256,
		MaxBatch:        1000,
		CORSOrigin:      "*",
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then builds the Config.
// An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var err error

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvCORSOrigin); ok {
		cfg.CORSOrigin = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvRate); ok && v != "" {
		if cfg.Rate, err = strconv.ParseFloat(v, 64); err != nil || cfg.Rate <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive number, got %q", EnvRate, v)
		}
	}
	if cfg.Burst, err = intVar(lookup, EnvBurst, cfg.Burst, 1); err != nil {
		return Config{}, err
	}
	if cfg.CacheSize, err = intVar(lookup, EnvCacheSize, cfg.CacheSize, 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxBatch, err = intVar(lookup, EnvMaxBatch, cfg.MaxBatch, 1); err != nil {
		return Config{}, err
	}
	if v, ok := lookup(EnvShutdownTimeout); ok && v != "" {
		if cfg.ShutdownTimeout, err = time.ParseDuration(v); err != nil || cfg.ShutdownTimeout <= 0 {
			return Config{}, fmt.Errorf("%s: want a positive duration, got %q", EnvShutdownTimeout, v)
		}
	}
	return cfg, nil
}

func intVar(lookup func(string) (string, bool), name string, def, min int) (int, error) {
	v, ok := lookup(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return 0, fmt.Errorf("%s: want an integer >= %d, got %q", name, min, v)
	}
	return n, nil
}
