//go:build !android

package render

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFW and GL calls must come from the main thread.
func init() {
	runtime.LockOSThread()
}

// Host is the desktop runtime: a window, its GL context and the frame loop.
type Host struct {
	window *glfw.Window
	input  *Input

	onResize func(width, height int)
	onInput  func(pressed, space bool)
}

// NewHost opens a window and initializes GL. Call Destroy when done.
func NewHost(width, height int, title string) (*Host, error) {
	window, err := initWindow(width, height, title)
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	h := &Host{window: window, input: NewInput()}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, hgt int) {
		if h.onResize != nil {
			h.onResize(w, hgt)
		}
	})
	return h, nil
}

// OnResize registers fn for framebuffer size changes.
func (h *Host) OnResize(fn func(width, height int)) { h.onResize = fn }

// OnInput registers fn for frames with a fresh left click, Space or Enter.
// pressed covers all three; space is Space alone.
func (h *Host) OnInput(fn func(pressed, space bool)) { h.onInput = fn }

func (h *Host) FramebufferSize() (int, int) { return h.window.GetFramebufferSize() }

func (h *Host) SetTitle(title string) { h.window.SetTitle(title) }

// Run calls frame once per display refresh until the window closes, Escape
// is pressed or ctx is done. Vsync paces the loop.
func (h *Host) Run(ctx context.Context, frame func()) {
	for !h.window.ShouldClose() {
		if ctx.Err() != nil {
			return
		}
		glfw.PollEvents()
		if h.window.GetKey(glfw.KeyEscape) == glfw.Press {
			h.window.SetShouldClose(true)
			continue
		}
		h.handleInput()

		fbW, fbH := h.window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimized: keep polling without drawing.
			glfw.WaitEventsTimeout(0.1)
			continue
		}

		frame()
		h.window.SwapBuffers()
	}
}

func (h *Host) handleInput() {
	clicked := h.input.JustClicked(h.window, glfw.MouseButtonLeft)
	space := h.input.JustPressed(h.window, glfw.KeySpace)
	enter := h.input.JustPressed(h.window, glfw.KeyEnter)

	if h.onInput != nil && (clicked || space || enter) {
		h.onInput(true, space)
	}
}

func (h *Host) Destroy() {
	h.window.Destroy()
	glfw.Terminate()
}
