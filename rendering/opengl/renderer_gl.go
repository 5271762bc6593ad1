// Package opengl renders the dot field through a GLFW window and an
// OpenGL 4.1 core context. The renderer owns every GPU handle it
// creates (program, VAO, attribute buffers) for its whole lifetime.
package opengl

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"dotfield/core"
	"dotfield/rendering/opengl/shaders"
)

// ErrContextUnavailable means the host cannot provide a capable
// rendering context. Setup aborts and the effect stays absent; this is
// never a crash.
var ErrContextUnavailable = errors.New("rendering context unavailable")

// DotRenderer owns the window, the GL context and the dot field
// pipeline: one shader program, one VAO, and three tightly packed
// attribute buffers (position, speed, phase) indexed 1:1 by dot order.
type DotRenderer struct {
	window *glfw.Window
	log    *zap.Logger

	program     uint32
	vao         uint32
	positionVBO uint32
	speedVBO    uint32
	phaseVBO    uint32

	resolutionUniform int32
	clockUniform      int32

	width    int
	height   int
	dotCount int32

	glfwUp   bool
	onResize func(width, height int)
}

// NewDotRenderer opens a window with a GL 4.1 core context and builds
// the dot field pipeline. Any failure releases everything created so
// far and returns an error; context-level failures wrap
// ErrContextUnavailable, shader failures are *shaders.CompileError or
// *shaders.LinkError.
func NewDotRenderer(width, height int, title string, log *zap.Logger) (*DotRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: GLFW init: %v", ErrContextUnavailable, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	r := &DotRenderer{log: log, glfwUp: true}

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: create window: %v", ErrContextUnavailable, err)
	}
	r.window = window

	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: OpenGL init: %v", ErrContextUnavailable, err)
	}
	log.Info("opengl context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	program, err := shaders.CompileDotFieldProgram()
	if err != nil {
		r.Close()
		return nil, err
	}
	r.program = program
	r.resolutionUniform = gl.GetUniformLocation(program, gl.Str("uResolution\x00"))
	r.clockUniform = gl.GetUniformLocation(program, gl.Str("uClock\x00"))

	r.createBuffers()

	// Point sprites composited over whatever is behind the window.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 0)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		r.Resize(fbWidth, fbHeight)
		if r.onResize != nil {
			r.onResize(fbWidth, fbHeight)
		}
	})

	// The framebuffer size is the surface size; no pixel-ratio scaling.
	fbWidth, fbHeight := window.GetFramebufferSize()
	r.Resize(fbWidth, fbHeight)

	return r, nil
}

// createBuffers sets up the VAO and the three attribute buffers:
// position (2 floats/vertex), speed and phase (1 float/vertex each),
// unnormalized and tightly packed.
func (r *DotRenderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.positionVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.positionVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &r.speedVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.speedVBO)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.GenBuffers(1, &r.phaseVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.phaseVBO)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 1, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindVertexArray(0)
}

// Resize updates the stored surface size and the GL viewport to the
// full new extent. The caller is responsible for rebuilding the grid
// afterwards; a resize invalidates it.
func (r *DotRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetResizeHandler registers the callback invoked after the viewport
// has been resized, with the new surface dimensions.
func (r *DotRenderer) SetResizeHandler(fn func(width, height int)) {
	r.onResize = fn
}

// Size returns the current surface dimensions in pixels.
func (r *DotRenderer) Size() (int, int) { return r.width, r.height }

// SetGrid replaces the contents of all three attribute buffers with
// the grid's dots in one contiguous upload each. An empty grid is
// valid and results in zero primitives drawn.
func (r *DotRenderer) SetGrid(grid *core.Grid) {
	uploadBuffer(r.positionVBO, grid.PositionData())
	uploadBuffer(r.speedVBO, grid.SpeedData())
	uploadBuffer(r.phaseVBO, grid.PhaseData())
	r.dotCount = int32(grid.Count())
	r.log.Debug("dot buffers uploaded", zap.Int("dots", grid.Count()),
		zap.Int("cols", grid.Cols), zap.Int("rows", grid.Rows))
}

func uploadBuffer(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

// Draw renders one frame: clear to transparent black, then all dots in
// a single point draw call, then present.
func (r *DotRenderer) Draw(clock float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if r.dotCount > 0 {
		gl.UseProgram(r.program)
		gl.BindVertexArray(r.vao)
		gl.Uniform2f(r.resolutionUniform, float32(r.width), float32(r.height))
		gl.Uniform1f(r.clockUniform, clock)
		gl.DrawArrays(gl.POINTS, 0, r.dotCount)
		gl.BindVertexArray(0)
	}

	r.window.SwapBuffers()
}

// ShouldClose reports whether the window has been asked to close.
func (r *DotRenderer) ShouldClose() bool { return r.window.ShouldClose() }

// PollEvents processes pending window events on the calling thread.
func (r *DotRenderer) PollEvents() { glfw.PollEvents() }

// WaitEventsTimeout blocks until an event arrives or the timeout (in
// seconds) elapses. Used to idle cheaply while the animation is paused.
func (r *DotRenderer) WaitEventsTimeout(timeout float64) { glfw.WaitEventsTimeout(timeout) }

// Close releases all GPU resources and tears down the window. It is
// safe to call on a partially initialized renderer; setup failures
// route through here so nothing leaks.
func (r *DotRenderer) Close() {
	if r.positionVBO != 0 || r.speedVBO != 0 || r.phaseVBO != 0 {
		buffers := [3]uint32{r.positionVBO, r.speedVBO, r.phaseVBO}
		gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
		r.positionVBO, r.speedVBO, r.phaseVBO = 0, 0, 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
	}
	if r.glfwUp {
		glfw.Terminate()
		r.glfwUp = false
	}
}
