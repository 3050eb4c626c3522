// Package audio opens the PCM sources the visualizer plays: MP3 files or
// the procedural synth. All sources produce signed 16-bit little-endian
// stereo.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"moodviz/internal/synth"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Source is a PCM stream plus the metadata the device needs.
type Source struct {
	io.Reader
	SampleRate int
	Name       string

	closer io.Closer
}

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// SynthSource returns the endless procedural track.
func SynthSource(seed uint64) *Source {
	return &Source{
		Reader:     synth.NewReader(seed),
		SampleRate: synth.SampleRate,
		Name:       "synth",
	}
}

// OpenFile opens an MP3 file. With loop set the stream restarts from the
// beginning instead of ending.
func OpenFile(path string, loop bool) (*Source, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".mp3" {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	src, err := NewMP3Source(f, filepath.Base(path), loop)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.closer = f
	return src, nil
}

// NewMP3Source decodes MP3 data from r.
func NewMP3Source(r io.Reader, name string, loop bool) (*Source, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp3 %s: %w", name, err)
	}
	var pcm io.Reader = dec
	if loop {
		pcm = &LoopReader{rs: dec}
	}
	return &Source{Reader: pcm, SampleRate: dec.SampleRate(), Name: name}, nil
}

// LoopReader rewinds its source on EOF.
type LoopReader struct {
	rs io.ReadSeeker
}

func NewLoopReader(rs io.ReadSeeker) *LoopReader { return &LoopReader{rs: rs} }

func (l *LoopReader) Read(p []byte) (int, error) {
	n, err := l.rs.Read(p)
	if err != io.EOF {
		return n, err
	}
	if _, serr := l.rs.Seek(0, io.SeekStart); serr != nil {
		return n, fmt.Errorf("rewind: %w", serr)
	}
	if n > 0 {
		return n, nil
	}
	// An empty stream would spin forever.
	n, err = l.rs.Read(p)
	if n == 0 && err == io.EOF {
		return 0, io.EOF
	}
	return n, err
}

// EOFHook calls fn once when the wrapped reader first reports io.EOF.
type EOFHook struct {
	r     io.Reader
	fn    func()
	fired bool
}

func NewEOFHook(r io.Reader, fn func()) *EOFHook { return &EOFHook{r: r, fn: fn} }

func (h *EOFHook) Read(p []byte) (int, error) {
	n, err := h.r.Read(p)
	if err == io.EOF && !h.fired {
		h.fired = true
		h.fn()
	}
	return n, err
}
