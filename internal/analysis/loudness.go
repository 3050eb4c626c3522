package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
)

var (
	ErrEmptyVector = errors.New("loudness: empty input vector")
	ErrNonFinite   = errors.New("loudness: non-finite result")
)

// Engine estimates perceptual loudness over a feature vector.
type Engine interface {
	Loudness(vec []float32) (float64, error)
}

// StevensExponent is the power-law exponent applied to signal energy.
const StevensExponent = 0.67

// StevensLoudness computes (sum of squares)^0.67.
type StevensLoudness struct{}

func (StevensLoudness) Loudness(vec []float32) (float64, error) {
	if len(vec) == 0 {
		return 0, ErrEmptyVector
	}
	var energy float64
	for _, v := range vec {
		energy += float64(v) * float64(v)
	}
	l := math.Pow(energy, StevensExponent)
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return 0, ErrNonFinite
	}
	return l, nil
}

// EngineFactory builds an engine. It may block; Loader calls it off the
// render thread.
type EngineFactory func(ctx context.Context) (Engine, error)

// NewStevensEngine is the default EngineFactory.
func NewStevensEngine(ctx context.Context) (Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return StevensLoudness{}, nil
}

type engineBox struct{ e Engine }

// Loader initializes an Engine asynchronously and publishes it once ready.
// Until then, and forever after a failed load, Engine reports false.
type Loader struct {
	engine atomic.Pointer[engineBox]
	done   chan struct{}
	err    atomic.Pointer[error]
	log    *slog.Logger
}

func NewLoader(log *slog.Logger) *Loader {
	return &Loader{done: make(chan struct{}), log: log}
}

// Start runs factory on a new goroutine. Call once.
func (l *Loader) Start(ctx context.Context, factory EngineFactory) {
	go func() {
		defer close(l.done)
		eng, err := factory(ctx)
		if err == nil && eng == nil {
			err = errors.New("factory returned no engine")
		}
		if err != nil {
			err = fmt.Errorf("init loudness engine: %w", err)
			l.err.Store(&err)
			l.log.Error("loudness engine unavailable, mood stays neutral", "err", err)
			return
		}
		l.engine.Store(&engineBox{e: eng})
		l.log.Info("loudness engine ready")
	}()
}

// Engine returns the loaded engine, or false if it is not available.
func (l *Loader) Engine() (Engine, bool) {
	b := l.engine.Load()
	if b == nil {
		return nil, false
	}
	return b.e, true
}

// Done is closed when the load attempt finishes, successfully or not.
func (l *Loader) Done() <-chan struct{} { return l.done }

// Err returns the load error once Done is closed.
func (l *Loader) Err() error {
	if p := l.err.Load(); p != nil {
		return *p
	}
	return nil
}
