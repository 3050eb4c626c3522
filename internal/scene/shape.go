package scene

import "math"

// ShapeKind selects the mesh a shape is drawn with.
type ShapeKind int

const (
	KindSphere ShapeKind = iota
	KindBox
)

func (k ShapeKind) String() string {
	if k == KindBox {
		return "box"
	}
	return "sphere"
}

// Shape is one bouncing object. Size is the mesh radius (sphere) or edge
// length (box); Scale is the audio-driven multiplier applied on top.
type Shape struct {
	Kind     ShapeKind
	Size     float64
	Position Vec3
	Velocity Vec3
	Scale    float64
	Rotation Vec3 // Euler XYZ, radians, unbounded
	Color    RGB
}

// Population is the fixed set of shapes for a session. Its length never
// changes after NewPopulation.
type Population struct {
	Shapes       []Shape
	Bounds       float64
	RotationGain float64
}

// Range is a closed-open interval [Min, Max).
type Range struct {
	Min, Max float64
}

// NewPopulation generates n shapes with uniformly random size, kind,
// position in [-bounds, bounds) per axis and velocity in
// [-speed/2, speed/2) per axis.
func NewPopulation(n int, bounds float64, size Range, speed float64, src Source) *Population {
	if n < 0 {
		n = 0
	}
	p := &Population{
		Shapes:       make([]Shape, n),
		Bounds:       bounds,
		RotationGain: RotationGain,
	}
	for i := range p.Shapes {
		s := &p.Shapes[i]
		s.Size = rangeF(src, size.Min, size.Max)
		if src.Float64() > 0.5 {
			s.Kind = KindSphere
		} else {
			s.Kind = KindBox
		}
		s.Position = Vec3{
			rangeF(src, -bounds, bounds),
			rangeF(src, -bounds, bounds),
			rangeF(src, -bounds, bounds),
		}
		s.Velocity = Vec3{
			rangeF(src, -speed/2, speed/2),
			rangeF(src, -speed/2, speed/2),
			rangeF(src, -speed/2, speed/2),
		}
		s.Scale = 1
		s.Color = White
	}
	return p
}

// Len returns the population size.
func (p *Population) Len() int { return len(p.Shapes) }

// AdvanceAll steps every shape once.
func (p *Population) AdvanceAll(normalizedBass float64, tag ColorTag) {
	for i := range p.Shapes {
		Advance(&p.Shapes[i], p.Bounds, p.RotationGain, normalizedBass, tag)
	}
}

// Advance integrates one fixed step for s.
//
// The bound check does not pull the shape back inside, so an axis that is
// still outside on the next step flips again.
func Advance(s *Shape, bounds, rotationGain, normalizedBass float64, tag ColorTag) {
	s.Position = s.Position.Add(s.Velocity)

	for axis := 0; axis < 3; axis++ {
		if math.Abs(s.Position.Axis(axis)) > bounds {
			s.Velocity.SetAxis(axis, -s.Velocity.Axis(axis))
		}
	}

	s.Scale = 1 + normalizedBass

	s.Rotation.X += normalizedBass * rotationGain
	s.Rotation.Y += normalizedBass * rotationGain

	if tag != nil {
		s.Color = tag.RGB()
	}
}
