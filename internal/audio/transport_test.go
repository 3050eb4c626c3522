package audio

import (
	"sync"
	"testing"
	"time"

	"moodviz/internal/log"
)

type fakeDevice struct {
	mu     sync.Mutex
	plays  int
	pauses int
}

func (d *fakeDevice) Play()  { d.mu.Lock(); d.plays++; d.mu.Unlock() }
func (d *fakeDevice) Pause() { d.mu.Lock(); d.pauses++; d.mu.Unlock() }

func (d *fakeDevice) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.plays, d.pauses
}

func readyChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// settle waits for a pending playWhenReady to finish.
func settle(t *testing.T, tr *Transport) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		tr.mu.Lock()
		w := tr.waiting
		tr.mu.Unlock()
		if !w {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("transport still waiting for the device")
}

func TestTransportToggleWhenReady(t *testing.T) {
	dev := &fakeDevice{}
	tr := NewTransport(dev, readyChan(), "test", log.Discard())

	tr.Toggle()
	if !tr.Playing() {
		t.Fatal("first toggle did not start playback")
	}
	tr.Toggle()
	if tr.Playing() {
		t.Fatal("second toggle did not pause")
	}
	if p, q := dev.counts(); p != 1 || q != 1 {
		t.Errorf("plays %d pauses %d, want 1 and 1", p, q)
	}
}

func TestTransportResumeWaitsForDevice(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	tr := NewTransport(dev, ready, "test", log.Discard())

	tr.Resume()
	tr.Resume()
	if p, _ := dev.counts(); p != 0 {
		t.Fatalf("played %d times before the device was ready", p)
	}
	close(ready)
	settle(t, tr)
	if p, _ := dev.counts(); p != 1 {
		t.Errorf("plays = %d after ready, want 1", p)
	}
}

func TestTransportPauseBeforeReadyWins(t *testing.T) {
	dev := &fakeDevice{}
	ready := make(chan struct{})
	tr := NewTransport(dev, ready, "test", log.Discard())

	tr.Toggle()
	tr.Toggle()
	close(ready)
	settle(t, tr)
	if p, _ := dev.counts(); p != 0 {
		t.Errorf("plays = %d, want 0 after a pause issued before ready", p)
	}
}

func TestTransportConcurrentTogglesAlternate(t *testing.T) {
	dev := &fakeDevice{}
	tr := NewTransport(dev, readyChan(), "test", log.Discard())

	const n = 200
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			tr.Toggle()
		}()
	}
	close(start)
	wg.Wait()

	if tr.Playing() {
		t.Error("an even number of toggles left playback on")
	}
	if p, q := dev.counts(); p != n/2 || q != n/2 {
		t.Errorf("plays %d pauses %d, want %d each", p, q, n/2)
	}
}

func TestTransportClosedIgnoresResume(t *testing.T) {
	dev := &fakeDevice{}
	tr := NewTransport(dev, readyChan(), "test", log.Discard())
	tr.Close()
	tr.Resume()
	tr.Toggle()
	if tr.Playing() {
		t.Error("closed transport reports playing")
	}
	if p, _ := dev.counts(); p != 0 {
		t.Errorf("plays = %d after Close, want 0", p)
	}
}
