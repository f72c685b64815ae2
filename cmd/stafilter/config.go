package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/nlstn/go-stafilter"
)

// Config is the CLI configuration, read from stafilter.yaml, STAFILTER_*
// environment variables and flags, in increasing precedence.
type Config struct {
	Schema  string    `mapstructure:"schema"`
	Workers int       `mapstructure:"workers"`
	Log     LogConfig `mapstructure:"log"`
	Cache   struct {
		Size int `mapstructure:"size"`
	} `mapstructure:"cache"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("schema", "observation")
	v.SetDefault("workers", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cache.size", 256)
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	v.SetConfigName("stafilter")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.stafilter")
	v.AddConfigPath("/etc/stafilter")
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix("STAFILTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) schema() (stafilter.Schema, error) {
	switch strings.ToLower(c.Schema) {
	case "observation", "observations":
		return stafilter.ObservationSchema(), nil
	case "datastream", "datastreams":
		return stafilter.DatastreamSchema(), nil
	case "any", "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown schema %q (want observation, datastream or any)", c.Schema)
}

func (c *Config) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.Log.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", c.Log.Format)
}
