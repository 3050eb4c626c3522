// Package mood classifies loudness into a small set of labels that drive
// shape colour, and shares the current label between goroutines.
package mood

import (
	"sync/atomic"

	"moodviz/internal/scene"
)

// Mood is a discrete label derived from loudness. The zero value is Neutral.
type Mood int32

const (
	Neutral Mood = iota
	Calm
	Sad
	Energetic
)

// Loudness thresholds.
const (
	CalmBelow      = 0.5
	EnergeticAbove = 1.0 // inclusive
)

func (m Mood) String() string {
	switch m {
	case Calm:
		return "calm"
	case Sad:
		return "sad"
	case Energetic:
		return "energetic"
	default:
		return "neutral"
	}
}

// RGB maps a mood to its display colour. Unknown values render as neutral.
func (m Mood) RGB() scene.RGB {
	switch m {
	case Calm:
		return scene.RGB{R: 0, G: 255, B: 255}
	case Sad:
		return scene.RGB{R: 0, G: 0, B: 255}
	case Energetic:
		return scene.RGB{R: 255, G: 0, B: 0}
	default:
		return scene.White
	}
}

// Classify buckets a loudness reading. Each call is independent; there is no
// hysteresis.
func Classify(loudness float64) Mood {
	switch {
	case loudness < CalmBelow:
		return Calm
	case loudness < EnergeticAbove:
		return Sad
	default:
		return Energetic
	}
}

// Cell holds the current mood. Safe for one writer and many readers.
type Cell struct {
	v atomic.Int32
}

func (c *Cell) Load() Mood { return Mood(c.v.Load()) }

func (c *Cell) Store(m Mood) { c.v.Store(int32(m)) }
