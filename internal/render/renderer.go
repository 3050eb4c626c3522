//go:build !android

// Package render owns the window, the GL context and drawing.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"moodviz/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type meshBuffer struct {
	vao   uint32
	vbo   uint32
	count int32
}

// Renderer draws shapes as flat-coloured meshes. All methods must be called
// on the thread that owns the GL context.
type Renderer struct {
	prog   uint32
	uMVP   int32
	uColor int32

	meshes map[scene.ShapeKind]meshBuffer
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{
		prog:   prog,
		meshes: make(map[scene.ShapeKind]meshBuffer, 2),
	}
	r.meshes[scene.KindSphere] = uploadMesh(scene.SphereMesh(scene.SphereWidthSegments, scene.SphereHeightSegments))
	r.meshes[scene.KindBox] = uploadMesh(scene.BoxMesh())

	gl.UseProgram(prog)
	r.uMVP = gl.GetUniformLocation(prog, gl.Str("uMVP\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	gl.Uniform3f(r.uColor, 1, 1, 1)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1.0)

	return r, nil
}

// uploadMesh creates a VAO/VBO pair holding one static triangle list.
func uploadMesh(m scene.Mesh) meshBuffer {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(&m.Vertices[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))
	gl.BindVertexArray(0)
	return meshBuffer{vao: vao, vbo: vbo, count: int32(m.VertexCount())}
}

// SetViewportSize resizes the GL viewport to the framebuffer.
func (r *Renderer) SetViewportSize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Render clears the framebuffer and draws every shape from the camera.
func (r *Renderer) Render(shapes []scene.Shape, cam *scene.Camera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.prog)

	vp := cam.ViewProjection()
	bound := scene.ShapeKind(-1)
	for i := range shapes {
		s := &shapes[i]
		m, ok := r.meshes[s.Kind]
		if !ok {
			continue
		}
		if s.Kind != bound {
			gl.BindVertexArray(m.vao)
			bound = s.Kind
		}
		mvp := vp.Mul(s.Model())
		gl.UniformMatrix4fv(r.uMVP, 1, false, &mvp[0])
		cr, cg, cb := s.Color.Floats()
		gl.Uniform3f(r.uColor, cr, cg, cb)
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) Destroy() {
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	gl.DeleteProgram(r.prog)
}
