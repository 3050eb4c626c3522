package synth

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestSectionAt(t *testing.T) {
	tests := []struct {
		t    float64
		want Section
	}{
		{0, SectionAmbient},
		{7.9, SectionAmbient},
		{8, SectionGroove},
		{16.5, SectionFull},
		{24, SectionAmbient},
	}
	for _, tt := range tests {
		if got := SectionAt(tt.t); got != tt.want {
			t.Errorf("SectionAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestReadWholeFramesOnly(t *testing.T) {
	r := NewReader(1)
	p := make([]byte, 4*100+3)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 400 {
		t.Errorf("n = %d, want 400", n)
	}
}

func TestReadStereoChannelsMatch(t *testing.T) {
	r := NewReader(1)
	p := make([]byte, 4*SampleRate/10)
	if _, err := r.Read(p); err != nil {
		t.Fatalf("Read: %v", err)
	}
	for i := 0; i < len(p); i += 4 {
		if !bytes.Equal(p[i:i+2], p[i+2:i+4]) {
			t.Fatalf("frame %d: left and right differ", i/4)
		}
	}
}

func TestReadDeterministic(t *testing.T) {
	a, b := NewReader(9), NewReader(9)
	pa, pb := make([]byte, 4*4096), make([]byte, 4*4096)
	a.t, b.t = 17, 17 // full section uses the noise seed
	a.Read(pa)
	b.Read(pb)
	if !bytes.Equal(pa, pb) {
		t.Error("equal seeds produced different audio")
	}
}

func rms(r *Reader, start float64, seconds float64) float64 {
	r.t = start
	p := make([]byte, 4*int(SampleRate*seconds))
	r.Read(p)
	var sum float64
	frames := len(p) / 4
	for i := 0; i < frames; i++ {
		v := float64(int16(binary.LittleEndian.Uint16(p[i*4:]))) / 32768
		sum += v * v
	}
	return math.Sqrt(sum / float64(frames))
}

func TestSectionsGetLouder(t *testing.T) {
	r := NewReader(3)
	ambient := rms(r, 2, 2)
	full := rms(r, 18, 2)
	if ambient == 0 {
		t.Fatal("ambient section is silent")
	}
	if full <= ambient {
		t.Errorf("full rms %v not above ambient rms %v", full, ambient)
	}
}
