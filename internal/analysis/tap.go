package analysis

import (
	"encoding/binary"
	"io"
)

// frameBytes is one signed 16-bit little-endian stereo frame.
const frameBytes = 4

// Tap sits between a PCM source and the audio device. Bytes pass through
// unchanged; each complete stereo frame is mixed to mono and pushed to the
// analyser.
type Tap struct {
	r        io.Reader
	a        *Analyser
	pending  [frameBytes]byte
	npending int
	mono     []float64
}

func NewTap(r io.Reader, a *Analyser) *Tap {
	return &Tap{r: r, a: a}
}

func (t *Tap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.capture(p[:n])
	}
	return n, err
}

func (t *Tap) capture(b []byte) {
	t.mono = t.mono[:0]

	if t.npending > 0 {
		k := copy(t.pending[t.npending:], b)
		t.npending += k
		b = b[k:]
		if t.npending < frameBytes {
			return
		}
		t.mono = append(t.mono, mixFrame(t.pending[:]))
		t.npending = 0
	}

	for len(b) >= frameBytes {
		t.mono = append(t.mono, mixFrame(b[:frameBytes]))
		b = b[frameBytes:]
	}
	t.npending = copy(t.pending[:], b)

	if len(t.mono) > 0 {
		t.a.Push(t.mono...)
	}
}

func mixFrame(f []byte) float64 {
	l := int16(binary.LittleEndian.Uint16(f[0:2]))
	r := int16(binary.LittleEndian.Uint16(f[2:4]))
	return (float64(l) + float64(r)) / 2 / 32768
}
