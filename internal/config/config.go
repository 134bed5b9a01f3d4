// SPDX-License-Identifier: EPL-2.0

// Package config loads recorder settings from a file and the
// environment, with defaults matching the reference hardware profile.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the recorder rig.
type Config struct {
	// SampleRate is the capture rate in Hz. Playback runs at 3/2 of it.
	SampleRate int `mapstructure:"sample_rate"`

	// PageSize is the streaming unit in bytes, one sample per byte.
	PageSize int `mapstructure:"page_size"`

	// RingDepth is the number of pages the sample ring holds.
	RingDepth int `mapstructure:"ring_depth"`

	// MaxSessionSeconds caps a recording's length.
	MaxSessionSeconds int `mapstructure:"max_session_seconds"`

	// DebounceMs is how long an input line must hold steady before an
	// edge is accepted.
	DebounceMs int `mapstructure:"debounce_ms"`

	// PollIntervalMs is the foreground loop cadence.
	PollIntervalMs int `mapstructure:"poll_interval_ms"`

	// OutputDir is where streams are kept.
	OutputDir string `mapstructure:"output_dir"`

	// FileName is the stream the controller records to and plays from.
	FileName string `mapstructure:"file_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sample_rate", 15625)
	v.SetDefault("page_size", 512)
	v.SetDefault("ring_depth", 2)
	v.SetDefault("max_session_seconds", 10)
	v.SetDefault("debounce_ms", 50)
	v.SetDefault("poll_interval_ms", 1)
	v.SetDefault("output_dir", ".")
	v.SetDefault("file_name", "voxrec.wav")
}

// Load reads configuration from file (optional; "" means defaults
// only) and the VOXREC_* environment.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VOXREC")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("config: sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: page_size must be positive, got %d", c.PageSize)
	}
	if c.RingDepth < 2 {
		return fmt.Errorf("config: ring_depth must be at least 2, got %d", c.RingDepth)
	}
	if c.MaxSessionSeconds <= 0 {
		return fmt.Errorf("config: max_session_seconds must be positive, got %d", c.MaxSessionSeconds)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("config: debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("config: poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	if c.FileName == "" {
		return fmt.Errorf("config: file_name must not be empty")
	}
	return nil
}

// MaxSessionPages converts the session cap to whole pages, rounding
// up so the cap is never shorter than requested.
func (c *Config) MaxSessionPages() int {
	samples := c.SampleRate * c.MaxSessionSeconds
	return (samples + c.PageSize - 1) / c.PageSize
}

// TickRate is the playback tick frequency in Hz, 3/2 of the capture
// rate.
func (c *Config) TickRate() int {
	return c.SampleRate * 3 / 2
}

// Debounce returns the input settle window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// PollInterval returns the foreground loop cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}
