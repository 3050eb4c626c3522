package scene

import "math"

// Mesh is a non-indexed triangle list: 3 floats (x, y, z) per vertex.
type Mesh struct {
	Vertices []float32
}

func (m Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// SphereMesh builds a unit-radius UV sphere.
func SphereMesh(widthSegs, heightSegs int) Mesh {
	if widthSegs < 3 {
		widthSegs = 3
	}
	if heightSegs < 2 {
		heightSegs = 2
	}
	point := func(ix, iy int) [3]float32 {
		u := float64(ix) / float64(widthSegs)
		v := float64(iy) / float64(heightSegs)
		phi := u * 2 * math.Pi
		theta := v * math.Pi
		return [3]float32{
			float32(-math.Cos(phi) * math.Sin(theta)),
			float32(math.Cos(theta)),
			float32(math.Sin(phi) * math.Sin(theta)),
		}
	}

	verts := make([]float32, 0, widthSegs*heightSegs*6*3)
	push := func(p [3]float32) { verts = append(verts, p[0], p[1], p[2]) }
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := point(ix+1, iy)
			b := point(ix, iy)
			c := point(ix, iy+1)
			d := point(ix+1, iy+1)
			// Pole rows collapse one triangle of each quad; skip it.
			if iy != 0 {
				push(a)
				push(b)
				push(d)
			}
			if iy != heightSegs-1 {
				push(b)
				push(c)
				push(d)
			}
		}
	}
	return Mesh{Vertices: verts}
}

// BoxMesh builds a unit cube centred on the origin.
func BoxMesh() Mesh {
	const h = 0.5
	corners := [8][3]float32{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	faces := [6][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	verts := make([]float32, 0, 6*6*3)
	for _, f := range faces {
		for _, idx := range [6]int{f[0], f[1], f[2], f[0], f[2], f[3]} {
			p := corners[idx]
			verts = append(verts, p[0], p[1], p[2])
		}
	}
	return Mesh{Vertices: verts}
}
