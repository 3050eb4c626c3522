//go:build !android

// Package app wires the window, audio pipeline, mood classifier and
// animation loop together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"moodviz/internal/analysis"
	"moodviz/internal/audio"
	"moodviz/internal/audio/playback"
	"moodviz/internal/config"
	"moodviz/internal/loop"
	"moodviz/internal/mood"
	"moodviz/internal/render"
	"moodviz/internal/scene"
)

// titleEvery is how many frames pass between window title refreshes.
const titleEvery = 30

// Run opens the window and blocks until it is closed or ctx is done.
// Only window and GL failures are returned; audio and loudness failures are
// logged and the visualizer keeps running without them.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	host, err := render.NewHost(cfg.Width, cfg.Height, config.WindowTitle)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer host.Destroy()

	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	analyser := analysis.NewAnalyser(cfg.FFTSize)
	bins := analyser.FrequencyBinCount()

	player := startAudio(cfg, analyser, log.With("component", "audio"))
	if player != nil {
		defer player.Close()
	}

	loader := analysis.NewLoader(log.With("component", "loudness"))
	loader.Start(ctx, analysis.NewStevensEngine)

	var cell mood.Cell
	classifier := mood.NewClassifier(&cell, analyser, loader, bins, cfg.MoodInterval, log.With("component", "mood"))
	go classifier.Run(ctx)

	pop := scene.NewPopulation(cfg.Shapes, scene.BoundsHalfWidth,
		scene.Range{Min: scene.MinShapeSize, Max: scene.MaxShapeSize},
		scene.SpeedRange, scene.NewRand(cfg.Seed))
	fbW, fbH := host.FramebufferSize()
	anim := loop.New(pop, scene.NewCamera(fbW, fbH), analyser, rend, &cell, bins)
	anim.Resize(fbW, fbH)

	host.OnResize(func(w, h int) {
		anim.Resize(w, h)
		log.Debug("resized", "width", w, "height", h)
	})
	if player != nil {
		gestures := loop.NewGestures(player.Resume, player.Toggle)
		host.OnInput(gestures.Press)
		if cfg.Autoplay {
			player.Resume()
			gestures.Unlock()
		}
	}

	log.Info("visualizer started", "shapes", pop.Len(), "seed", cfg.Seed, "fft_size", analyser.FFTSize())
	host.Run(ctx, func() {
		anim.Tick()
		if anim.Frames%titleEvery == 1 {
			host.SetTitle(config.WindowTitle + " | " + anim.Status())
		}
	})
	log.Info("visualizer stopped", "frames", anim.Frames)
	return nil
}

// startAudio opens the configured source and the audio device. It returns
// nil when either fails.
func startAudio(cfg config.Config, a *analysis.Analyser, log *slog.Logger) *playback.Player {
	var src *audio.Source
	if cfg.AudioPath == "" {
		src = audio.SynthSource(cfg.Seed)
	} else {
		s, err := audio.OpenFile(cfg.AudioPath, cfg.Loop)
		if err != nil {
			log.Error("audio source failed (continuing without sound)", "path", cfg.AudioPath, "err", err)
			return nil
		}
		src = s
	}

	p, err := playback.New(src, a, log)
	if err != nil {
		src.Close()
		log.Error("audio init failed (continuing without sound)", "err", err)
		return nil
	}
	log.Info("audio ready", "source", src.Name, "sample_rate", src.SampleRate, "autoplay", cfg.Autoplay)
	return p
}
