package scene

// Camera is a fixed perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FOV, Near, Far float64
	Position       Vec3
	Aspect         float64

	projection Mat4
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:      CameraFOV,
		Near:     CameraNear,
		Far:      CameraFar,
		Position: Vec3{Z: CameraZ},
		Aspect:   1,
	}
	c.SetViewport(width, height)
	c.UpdateProjection()
	return c
}

// SetViewport sets Aspect to width/height. Degenerate sizes (a minimized
// window reports 0x0) leave the camera unchanged and return false.
func (c *Camera) SetViewport(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.Aspect = float64(width) / float64(height)
	return true
}

// UpdateProjection rebuilds the projection from FOV, Aspect, Near and Far.
func (c *Camera) UpdateProjection() {
	c.projection = Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

func (c *Camera) Projection() Mat4 { return c.projection }

// View is the inverse of the camera translation; the camera never rotates.
func (c *Camera) View() Mat4 {
	return Translate(Vec3{-c.Position.X, -c.Position.Y, -c.Position.Z})
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() Mat4 {
	return c.projection.Mul(c.View())
}
