package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"moodviz/internal/log"
)

func TestStevensLoudness(t *testing.T) {
	var e StevensLoudness
	tests := []struct {
		name string
		vec  []float32
		want float64
	}{
		{"silence", []float32{0, 0, 0}, 0},
		{"unit energy", []float32{1, 0, 0}, 1},
		{"four ones", []float32{1, 1, 1, 1}, math.Pow(4, StevensExponent)},
		{"quiet", []float32{0.25, 0.25}, math.Pow(0.125, StevensExponent)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Loudness(tt.vec)
			if err != nil {
				t.Fatalf("Loudness: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Loudness = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStevensLoudnessErrors(t *testing.T) {
	var e StevensLoudness
	if _, err := e.Loudness(nil); !errors.Is(err, ErrEmptyVector) {
		t.Errorf("empty vector err = %v, want ErrEmptyVector", err)
	}
	if _, err := e.Loudness([]float32{float32(math.Inf(1))}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("inf err = %v, want ErrNonFinite", err)
	}
	if _, err := e.Loudness([]float32{float32(math.NaN())}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("nan err = %v, want ErrNonFinite", err)
	}
}

func waitDone(t *testing.T, l *Loader) {
	t.Helper()
	select {
	case <-l.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loader did not finish")
	}
}

func TestLoaderReady(t *testing.T) {
	l := NewLoader(log.Discard())
	if _, ok := l.Engine(); ok {
		t.Fatal("engine ready before Start")
	}
	l.Start(context.Background(), NewStevensEngine)
	waitDone(t, l)

	eng, ok := l.Engine()
	if !ok || eng == nil {
		t.Fatal("engine not ready after load")
	}
	if l.Err() != nil {
		t.Errorf("Err = %v, want nil", l.Err())
	}
}

func TestLoaderNotReadyWhileLoading(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(log.Discard())
	l.Start(context.Background(), func(ctx context.Context) (Engine, error) {
		<-release
		return StevensLoudness{}, nil
	})

	if _, ok := l.Engine(); ok {
		t.Error("engine reported ready while factory blocked")
	}
	close(release)
	waitDone(t, l)
	if _, ok := l.Engine(); !ok {
		t.Error("engine not ready after factory returned")
	}
}

func TestLoaderFailureLeavesEngineUnavailable(t *testing.T) {
	boom := errors.New("wasm missing")
	l := NewLoader(log.Discard())
	l.Start(context.Background(), func(ctx context.Context) (Engine, error) {
		return nil, boom
	})
	waitDone(t, l)

	if _, ok := l.Engine(); ok {
		t.Error("engine ready after failed load")
	}
	if !errors.Is(l.Err(), boom) {
		t.Errorf("Err = %v, want wrapped %v", l.Err(), boom)
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewLoader(log.Discard())
	l.Start(ctx, NewStevensEngine)
	waitDone(t, l)
	if !errors.Is(l.Err(), context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", l.Err())
	}
}
