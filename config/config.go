package config

import (
	"errors"
	"fmt"
	"strings"

	"cfrtree/mapping"
	"cfrtree/meta"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CFRTREE_HANDS.
const EnvPrefix = "CFRTREE"

type Config struct {
	Hands                int       `mapstructure:"hands"`
	Goroutines           int       `mapstructure:"goroutines"`
	Seed                 uint64    `mapstructure:"seed"`
	Scheme               string    `mapstructure:"scheme"`
	Buckets              []float64 `mapstructure:"buckets"`
	LogLevel             string    `mapstructure:"log_level"`
	MetricsAddr          string    `mapstructure:"metrics_addr"`
	OutputDir            string    `mapstructure:"output_dir"`
	ThroughputGoroutines []int     `mapstructure:"throughput_goroutines"`
}

// Load reads the optional config file at path, applies environment
// overrides and fills the rest from the defaults in meta.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("hands", meta.HANDS)
	v.SetDefault("goroutines", meta.GOROUTINES)
	v.SetDefault("seed", meta.SEED)
	v.SetDefault("scheme", meta.SCHEME)
	v.SetDefault("buckets", meta.BUCKETS)
	v.SetDefault("log_level", meta.LOG_LEVEL)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("output_dir", meta.OUTPUT_DIR)
	v.SetDefault("throughput_goroutines", meta.THROUGHPUT_GOROUTINES)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Hands < 0 {
		errs = append(errs, fmt.Errorf("hands must not be negative, got %d", c.Hands))
	}
	if c.Goroutines <= 0 {
		errs = append(errs, fmt.Errorf("goroutines must be positive, got %d", c.Goroutines))
	}
	if _, err := c.Mapping(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	for _, g := range c.ThroughputGoroutines {
		if g <= 0 {
			errs = append(errs, fmt.Errorf("throughput goroutines must be positive, got %d", g))
		}
	}
	return errors.Join(errs...)
}

// Mapping returns the action mapping factory of the configured scheme.
func (c *Config) Mapping() (mapping.Factory, error) {
	return mapping.Lookup(c.Scheme, c.Buckets)
}

func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
