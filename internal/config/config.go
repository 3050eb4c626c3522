// Package config collects runtime settings from flags and MOODVIZ_*
// environment variables. Environment values override defaults; flags
// override both.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"moodviz/internal/analysis"
	"moodviz/internal/mood"
	"moodviz/internal/scene"
)

// Window defaults.
const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "moodviz"
)

type Config struct {
	AudioPath    string
	Loop         bool
	Autoplay     bool
	Seed         uint64
	Shapes       int
	Width        int
	Height       int
	FFTSize      int
	MoodInterval time.Duration
	LogLevel     string
}

// Default returns the stock settings. Seed is filled from the clock by Load
// when not set explicitly.
func Default() Config {
	return Config{
		Shapes:       scene.DefaultShapeCount,
		Width:        WindowWidth,
		Height:       WindowHeight,
		FFTSize:      analysis.DefaultFFTSize,
		MoodInterval: mood.DefaultInterval,
		LogLevel:     "info",
	}
}

// Load parses args (without the program name). getenv is usually os.Getenv;
// now supplies the fallback seed.
func Load(args []string, getenv func(string) string, now func() time.Time) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("moodviz", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = uint64(now().UnixNano())
	}
	return cfg, cfg.Validate()
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.AudioPath, "audio", cfg.AudioPath, "MP3 file to play; empty plays the built-in synth")
	fs.BoolVar(&cfg.Loop, "loop", cfg.Loop, "restart the track when it ends")
	fs.BoolVar(&cfg.Autoplay, "autoplay", cfg.Autoplay, "start playback without waiting for a click")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "shape layout seed; 0 uses the clock")
	fs.IntVar(&cfg.Shapes, "shapes", cfg.Shapes, "number of shapes")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "initial window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "initial window height")
	fs.IntVar(&cfg.FFTSize, "fft-size", cfg.FFTSize, "analyser FFT size (power of two)")
	fs.DurationVar(&cfg.MoodInterval, "mood-interval", cfg.MoodInterval, "how often mood is re-classified")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
}

// Usage renders flag help with default values.
func Usage() string {
	var b strings.Builder
	cfg := Default()
	fs := flag.NewFlagSet("moodviz", flag.ContinueOnError)
	bindFlags(fs, &cfg)
	fs.SetOutput(&b)
	fmt.Fprintln(&b, "Usage: moodviz [flags]")
	fs.PrintDefaults()
	return b.String()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("MOODVIZ_AUDIO"); v != "" {
		c.AudioPath = v
	}
	if v := getenv("MOODVIZ_LOOP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOODVIZ_LOOP: %w", err)
		}
		c.Loop = b
	}
	if v := getenv("MOODVIZ_AUTOPLAY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MOODVIZ_AUTOPLAY: %w", err)
		}
		c.Autoplay = b
	}
	if v := getenv("MOODVIZ_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MOODVIZ_SEED: %w", err)
		}
		c.Seed = s
	}
	if v := getenv("MOODVIZ_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

var (
	ErrShapes   = errors.New("shape count must be positive")
	ErrWindow   = errors.New("window size must be positive")
	ErrFFTSize  = errors.New("fft size must be a power of two between 32 and 32768")
	ErrInterval = errors.New("mood interval must be positive")
)

func (c Config) Validate() error {
	var errs []error
	if c.Shapes <= 0 {
		errs = append(errs, ErrShapes)
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, ErrWindow)
	}
	if c.FFTSize < 32 || c.FFTSize > 32768 || c.FFTSize&(c.FFTSize-1) != 0 {
		errs = append(errs, ErrFFTSize)
	}
	if c.MoodInterval <= 0 {
		errs = append(errs, ErrInterval)
	}
	return errors.Join(errs...)
}
