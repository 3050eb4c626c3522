package audio

import (
	"log/slog"
	"sync"
	"time"
)

// Device is the part of an output stream the transport drives.
type Device interface {
	Play()
	Pause()
}

// Transport tracks whether playback is wanted and applies it to a Device
// that may still be initializing. Safe for concurrent use.
type Transport struct {
	dev   Device
	ready <-chan struct{}
	name  string
	log   *slog.Logger

	mu      sync.Mutex
	wantOn  bool
	waiting bool
	closed  bool
}

// NewTransport starts paused. ready closes once dev accepts Play.
func NewTransport(dev Device, ready <-chan struct{}, name string, log *slog.Logger) *Transport {
	return &Transport{dev: dev, ready: ready, name: name, log: log}
}

// Resume starts or continues playback. If the device is not ready yet,
// playback begins as soon as it is.
func (t *Transport) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resumeLocked()
}

// Pause halts playback.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pauseLocked()
}

// Toggle flips between playing and paused.
func (t *Transport) Toggle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.wantOn {
		t.pauseLocked()
	} else {
		t.resumeLocked()
	}
}

// Playing reports whether playback is wanted.
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wantOn
}

// Close stops the transport for good. Later calls are no-ops.
func (t *Transport) Close() {
	t.mu.Lock()
	t.closed = true
	t.wantOn = false
	t.mu.Unlock()
}

func (t *Transport) resumeLocked() {
	if t.closed {
		return
	}
	t.wantOn = true
	select {
	case <-t.ready:
		t.dev.Play()
		t.log.Info("audio resumed", "source", t.name)
	default:
		if t.waiting {
			return
		}
		t.waiting = true
		go t.playWhenReady()
	}
}

func (t *Transport) pauseLocked() {
	t.wantOn = false
	if t.closed {
		return
	}
	t.dev.Pause()
	t.log.Info("audio paused", "source", t.name)
}

func (t *Transport) playWhenReady() {
	start := time.Now()
	<-t.ready
	t.mu.Lock()
	defer t.mu.Unlock()
	t.waiting = false
	if t.closed || !t.wantOn {
		return
	}
	t.dev.Play()
	t.log.Info("audio resumed", "source", t.name, "waited", time.Since(start))
}
