package config

import (
	"errors"
	"flag"
	"strings"
	"testing"
	"time"
)

var fixedNow = func() time.Time { return time.Unix(0, 12345) }

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, env(nil), fixedNow)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Shapes != 20 || cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.FFTSize != 256 {
		t.Errorf("FFTSize = %d, want 256", cfg.FFTSize)
	}
	if cfg.MoodInterval != 5*time.Second {
		t.Errorf("MoodInterval = %v, want 5s", cfg.MoodInterval)
	}
	if cfg.Seed != 12345 {
		t.Errorf("Seed = %d, want clock fallback 12345", cfg.Seed)
	}
	if cfg.Autoplay || cfg.Loop || cfg.AudioPath != "" {
		t.Errorf("audio defaults = %+v", cfg)
	}
}

func TestLoadEnvAndFlags(t *testing.T) {
	e := env(map[string]string{
		"MOODVIZ_AUDIO":     "song.mp3",
		"MOODVIZ_SEED":      "7",
		"MOODVIZ_LOOP":      "true",
		"MOODVIZ_LOG_LEVEL": "debug",
	})
	cfg, err := Load([]string{"-seed", "9", "-shapes", "5", "-mood-interval", "250ms", "-autoplay"}, e, fixedNow)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AudioPath != "song.mp3" || !cfg.Loop || cfg.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Seed != 9 {
		t.Errorf("Seed = %d, want flag value 9 over env 7", cfg.Seed)
	}
	if cfg.Shapes != 5 || cfg.MoodInterval != 250*time.Millisecond || !cfg.Autoplay {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestLoadEnvErrors(t *testing.T) {
	tests := []map[string]string{
		{"MOODVIZ_SEED": "-1"},
		{"MOODVIZ_LOOP": "maybe"},
		{"MOODVIZ_AUTOPLAY": "x"},
	}
	for _, m := range tests {
		if _, err := Load(nil, env(m), fixedNow); err == nil {
			t.Errorf("env %v accepted", m)
		}
	}
}

func TestLoadBadFlag(t *testing.T) {
	if _, err := Load([]string{"-nope"}, env(nil), fixedNow); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"shapes", func(c *Config) { c.Shapes = 0 }, ErrShapes},
		{"width", func(c *Config) { c.Width = -1 }, ErrWindow},
		{"fft not power of two", func(c *Config) { c.FFTSize = 300 }, ErrFFTSize},
		{"fft too small", func(c *Config) { c.FFTSize = 16 }, ErrFFTSize},
		{"interval", func(c *Config) { c.MoodInterval = 0 }, ErrInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mod(&c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestHelpFlag(t *testing.T) {
	_, err := Load([]string{"-h"}, env(nil), fixedNow)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
	if u := Usage(); !strings.Contains(u, "-mood-interval") || !strings.Contains(u, "5s") {
		t.Errorf("usage missing flags or defaults:\n%s", u)
	}
}
