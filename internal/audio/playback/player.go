// Package playback drives the audio device. The PCM stream is tapped into an
// analyser on its way to the speakers.
package playback

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"moodviz/internal/analysis"
	"moodviz/internal/audio"
)

const (
	ChannelCount = 2
	Volume       = 0.8

	// BufferBytes is the device read-ahead, about 46 ms at 44.1 kHz stereo.
	BufferBytes = 8192
)

// Player plays one Source. It starts paused until the first Resume, which
// the host issues on the first user interaction unless autoplay is set.
type Player struct {
	ctx       *oto.Context
	player    oto.Player
	src       *audio.Source
	transport *audio.Transport

	mu     sync.Mutex
	closed bool
}

// New opens the audio device at the source's sample rate. Only one Player
// may exist per process. The analyser is paced to the sample rate.
func New(src *audio.Source, a *analysis.Analyser, log *slog.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(src.SampleRate, ChannelCount, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	a.Pace(src.SampleRate, time.Now)
	stream := audio.NewEOFHook(analysis.NewTap(src, a), func() {
		log.Info("track finished", "source", src.Name)
		a.Reset()
	})
	player := ctx.NewPlayer(stream)
	if s, ok := player.(oto.BufferSizeSetter); ok {
		s.SetBufferSize(BufferBytes)
	}
	player.SetVolume(Volume)
	return &Player{
		ctx:       ctx,
		player:    player,
		src:       src,
		transport: audio.NewTransport(player, ready, src.Name, log),
	}, nil
}

// Resume starts or continues playback. If the device is still initializing,
// playback begins as soon as it is ready.
func (p *Player) Resume() { p.transport.Resume() }

// Pause halts playback. The analyser keeps its last samples.
func (p *Player) Pause() { p.transport.Pause() }

// Toggle flips between playing and paused.
func (p *Player) Toggle() { p.transport.Toggle() }

// Err reports a playback error from the device or the source.
func (p *Player) Err() error {
	return p.player.Err()
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.transport.Close()
	err := p.player.Close()
	if cerr := p.src.Close(); err == nil {
		err = cerr
	}
	return err
}
