// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults = %v", err)
	}

	if cfg.SampleRate != 15625 {
		t.Errorf("SampleRate = %d, want 15625", cfg.SampleRate)
	}
	if cfg.PageSize != 512 {
		t.Errorf("PageSize = %d, want 512", cfg.PageSize)
	}
	if got := cfg.MaxSessionPages(); got != 306 {
		t.Errorf("MaxSessionPages() = %d, want 306", got)
	}
	if got := cfg.TickRate(); got != 23437 {
		t.Errorf("TickRate() = %d, want 23437", got)
	}
	if got := cfg.Debounce(); got != 50*time.Millisecond {
		t.Errorf("Debounce() = %v, want 50ms", got)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "voxrec.yaml")
	data := []byte("sample_rate: 8000\nmax_session_seconds: 4\nfile_name: take1.wav\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", cfg.SampleRate)
	}
	if cfg.FileName != "take1.wav" {
		t.Errorf("FileName = %q, want take1.wav", cfg.FileName)
	}

	// Untouched keys keep their defaults
	if cfg.PageSize != 512 {
		t.Errorf("PageSize = %d, want default 512", cfg.PageSize)
	}

	// 8000 * 4 / 512 = 62.5, rounds up
	if got := cfg.MaxSessionPages(); got != 63 {
		t.Errorf("MaxSessionPages() = %d, want 63", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() accepted a missing file")
	}
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"shallow ring", func(c *Config) { c.RingDepth = 1 }},
		{"zero session cap", func(c *Config) { c.MaxSessionSeconds = 0 }},
		{"negative debounce", func(c *Config) { c.DebounceMs = -1 }},
		{"zero poll interval", func(c *Config) { c.PollIntervalMs = 0 }},
		{"empty file name", func(c *Config) { c.FileName = "" }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}
