package mood

import (
	"context"
	"log/slog"
	"time"

	"moodviz/internal/analysis"
)

// DefaultInterval is how often the classifier re-evaluates.
const DefaultInterval = 5 * time.Second

// Sampler provides frequency snapshots.
type Sampler interface {
	ByteFrequencyData(dst []byte)
}

// EngineSource reports the loudness engine once it has loaded.
type EngineSource interface {
	Engine() (analysis.Engine, bool)
}

// Classifier periodically samples the spectrum, estimates loudness and
// writes the resulting mood to a Cell.
type Classifier struct {
	cell     *Cell
	sampler  Sampler
	engines  EngineSource
	interval time.Duration
	log      *slog.Logger

	snapshot []byte
	vec      []float32
}

// NewClassifier creates a classifier sampling bins frequency bins.
func NewClassifier(cell *Cell, sampler Sampler, engines EngineSource, bins int, interval time.Duration, log *slog.Logger) *Classifier {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Classifier{
		cell:     cell,
		sampler:  sampler,
		engines:  engines,
		interval: interval,
		log:      log,
		snapshot: make([]byte, bins),
		vec:      make([]float32, bins),
	}
}

// Evaluate runs one classification. It reports false, leaving the cell
// untouched, when the engine is not loaded yet or loudness fails.
func (c *Classifier) Evaluate() (Mood, bool) {
	eng, ok := c.engines.Engine()
	if !ok {
		c.log.Debug("loudness engine not ready, skipping mood update")
		return c.cell.Load(), false
	}

	c.sampler.ByteFrequencyData(c.snapshot)
	for i, b := range c.snapshot {
		c.vec[i] = float32(b)
	}

	loudness, err := eng.Loudness(c.vec)
	if err != nil {
		c.log.Warn("mood detection failed", "err", err)
		return c.cell.Load(), false
	}

	m := Classify(loudness)
	c.cell.Store(m)
	c.log.Info("detected mood", "mood", m.String(), "loudness", loudness)
	return m, true
}

// Run evaluates every interval until ctx is done. The first evaluation
// happens one interval after start.
func (c *Classifier) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Evaluate()
		}
	}
}
