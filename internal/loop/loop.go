// Package loop advances and draws the scene once per display refresh.
package loop

import (
	"fmt"

	"moodviz/internal/analysis"
	"moodviz/internal/mood"
	"moodviz/internal/scene"
)

// Sampler fills a frequency snapshot.
type Sampler interface {
	ByteFrequencyData(dst []byte)
}

// Drawer is the graphics side of the loop.
type Drawer interface {
	SetViewportSize(width, height int)
	Render(shapes []scene.Shape, cam *scene.Camera)
}

// Loop owns the population and camera. It is not safe for concurrent use;
// the host calls Tick and Resize from the render thread.
type Loop struct {
	pop     *scene.Population
	cam     *scene.Camera
	sampler Sampler
	drawer  Drawer
	cell    *mood.Cell

	snapshot []byte

	// Last frame's readings, shown in the window title.
	Bass           float64
	NormalizedBass float64
	Mood           mood.Mood
	Frames         uint64
}

func New(pop *scene.Population, cam *scene.Camera, sampler Sampler, drawer Drawer, cell *mood.Cell, bins int) *Loop {
	return &Loop{
		pop:      pop,
		cam:      cam,
		sampler:  sampler,
		drawer:   drawer,
		cell:     cell,
		snapshot: make([]byte, bins),
	}
}

// Tick samples audio, advances every shape and draws one frame.
func (l *Loop) Tick() {
	l.sampler.ByteFrequencyData(l.snapshot)
	l.Bass = analysis.BassEnergy(l.snapshot)
	l.NormalizedBass = analysis.NormalizeBass(l.Bass)
	l.Mood = l.cell.Load()

	l.pop.AdvanceAll(l.NormalizedBass, l.Mood)

	l.drawer.Render(l.pop.Shapes, l.cam)
	l.Frames++
}

// Resize updates the output surface and camera projection. A zero-sized
// surface (minimized window) is ignored.
func (l *Loop) Resize(width, height int) {
	if !l.cam.SetViewport(width, height) {
		return
	}
	l.cam.UpdateProjection()
	l.drawer.SetViewportSize(width, height)
}

func (l *Loop) Population() *scene.Population { return l.pop }

func (l *Loop) Camera() *scene.Camera { return l.cam }

// Status summarizes the last frame for the window title.
func (l *Loop) Status() string {
	return fmt.Sprintf("mood %s | bass %.0f (x%.2f) | %d shapes", l.Mood, l.Bass, 1+l.NormalizedBass, l.pop.Len())
}
