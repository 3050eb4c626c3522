package scene

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

var White = RGB{255, 255, 255}

// Floats returns the colour as GL-ready 0..1 components.
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// ColorTag is anything that resolves to a display colour.
type ColorTag interface {
	RGB() RGB
}
