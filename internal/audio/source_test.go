package audio

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"moodviz/internal/synth"
)

func TestLoopReaderRewinds(t *testing.T) {
	l := NewLoopReader(bytes.NewReader([]byte("abc")))
	got := make([]byte, 0, 10)
	buf := make([]byte, 2)
	for len(got) < 10 {
		n, err := l.Read(buf)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		got = append(got, buf[:n]...)
	}
	if string(got[:9]) != "abcabcabc" {
		t.Errorf("got %q, want repeating abc", got)
	}
}

func TestLoopReaderEmptyStreamEnds(t *testing.T) {
	l := NewLoopReader(bytes.NewReader(nil))
	if _, err := l.Read(make([]byte, 4)); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestEOFHookFiresOnce(t *testing.T) {
	calls := 0
	h := NewEOFHook(bytes.NewReader([]byte("xy")), func() { calls++ })
	if _, err := io.ReadAll(h); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	h.Read(make([]byte, 1))
	if calls != 1 {
		t.Errorf("hook fired %d times, want 1", calls)
	}
}

func TestSynthSource(t *testing.T) {
	s := SynthSource(5)
	if s.SampleRate != synth.SampleRate {
		t.Errorf("SampleRate = %d, want %d", s.SampleRate, synth.SampleRate)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	n, err := s.Read(make([]byte, 64))
	if n != 64 || err != nil {
		t.Errorf("Read = (%d, %v), want (64, nil)", n, err)
	}
}

func TestOpenFileRejectsOtherFormats(t *testing.T) {
	_, err := OpenFile("track.ogg", false)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.mp3"), false)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestNewMP3SourceRejectsGarbage(t *testing.T) {
	if _, err := NewMP3Source(bytes.NewReader([]byte("not an mp3")), "junk", false); err == nil {
		t.Error("garbage decoded without error")
	}
}
