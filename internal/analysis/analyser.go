// Package analysis turns the playback stream into frequency snapshots and
// loudness estimates.
package analysis

import (
	"math"
	"math/cmplx"
	"sync"
	"time"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Analyser defaults, matching a browser AnalyserNode.
const (
	DefaultFFTSize     = 256
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0

	// MaxLag bounds how far a paced analyser may trail its producer.
	MaxLag = 2 * time.Second
)

// Analyser keeps the most recent fftSize mono samples and produces byte
// frequency snapshots from them. Safe for concurrent use.
type Analyser struct {
	mu sync.Mutex

	fftSize   int
	smoothing float64
	minDB     float64
	maxDB     float64

	ring []float64
	pos  int

	rate  int
	now   func() time.Time
	queue []float64
	last  time.Time
	carry float64

	fft      *fourier.FFT
	window   []float64
	frame    []float64
	coeffs   []complex128
	smoothed []float64
}

// NewAnalyser creates an analyser. fftSize must be a power of two >= 32;
// other values fall back to DefaultFFTSize.
func NewAnalyser(fftSize int) *Analyser {
	if fftSize < 32 || fftSize&(fftSize-1) != 0 {
		fftSize = DefaultFFTSize
	}
	ones := make([]float64, fftSize)
	for i := range ones {
		ones[i] = 1
	}
	return &Analyser{
		fftSize:   fftSize,
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDecibels,
		maxDB:     DefaultMaxDecibels,
		ring:      make([]float64, fftSize),
		fft:       fourier.NewFFT(fftSize),
		window:    window.Blackman(ones),
		frame:     make([]float64, fftSize),
		smoothed:  make([]float64, fftSize/2),
	}
}

// FrequencyBinCount is the snapshot length, fftSize/2.
func (a *Analyser) FrequencyBinCount() int { return a.fftSize / 2 }

// FFTSize returns the transform length.
func (a *Analyser) FFTSize() int { return a.fftSize }

// Pace makes Push queue samples instead of writing them straight to the
// ring. Queued samples are released at sampleRate per second of wall clock,
// measured with now, whenever a snapshot is taken.
func (a *Analyser) Pace(sampleRate int, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	a.mu.Lock()
	a.rate = sampleRate
	a.now = now
	a.mu.Unlock()
}

// Push appends mono samples in [-1, 1].
func (a *Analyser) Push(samples ...float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rate <= 0 {
		a.writeLocked(samples)
		return
	}
	if len(a.queue) == 0 {
		a.last = a.now()
		a.carry = 0
	}
	a.queue = append(a.queue, samples...)
	if limit := int(MaxLag.Seconds() * float64(a.rate)); len(a.queue) > limit {
		n := copy(a.queue, a.queue[len(a.queue)-limit:])
		a.queue = a.queue[:n]
	}
}

// Queued reports how many paced samples have not reached the ring yet.
func (a *Analyser) Queued() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

func (a *Analyser) writeLocked(samples []float64) {
	for _, s := range samples {
		a.ring[a.pos] = s
		a.pos = (a.pos + 1) % a.fftSize
	}
}

// drainLocked moves the samples due since the last drain into the ring.
func (a *Analyser) drainLocked() {
	if a.rate <= 0 || len(a.queue) == 0 {
		return
	}
	t := a.now()
	elapsed := t.Sub(a.last).Seconds()
	if elapsed <= 0 {
		return
	}
	a.last = t
	due := elapsed*float64(a.rate) + a.carry
	n := int(due)
	a.carry = due - float64(n)
	if n >= len(a.queue) {
		n = len(a.queue)
		a.carry = 0
	}
	a.writeLocked(a.queue[:n])
	m := copy(a.queue, a.queue[n:])
	a.queue = a.queue[:m]
}

// Reset clears buffered samples and smoothing history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	clear(a.ring)
	clear(a.smoothed)
	a.pos = 0
	a.queue = a.queue[:0]
	a.carry = 0
	a.mu.Unlock()
}

// ByteFrequencyData overwrites dst with the current spectrum, one byte per
// bin, mapped linearly from [minDecibels, maxDecibels] to [0, 255]. Entries
// past FrequencyBinCount are zeroed.
func (a *Analyser) ByteFrequencyData(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.drainLocked()
	for i := 0; i < a.fftSize; i++ {
		a.frame[i] = a.ring[(a.pos+i)%a.fftSize] * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)

	bins := a.fftSize / 2
	scale := 1.0 / float64(a.fftSize)
	rangeScale := 255.0 / (a.maxDB - a.minDB)
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(a.coeffs[k]) * scale
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		if k >= len(dst) {
			continue
		}
		dst[k] = toByte(a.smoothed[k], a.minDB, rangeScale)
	}
	for k := bins; k < len(dst); k++ {
		dst[k] = 0
	}
}

func toByte(mag, minDB, rangeScale float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(rangeScale * (db - minDB))
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
