package core

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultCellSize is the grid spacing between neighboring dots, in pixels.
	DefaultCellSize = 20

	speedMin = 0.5
	speedMax = 2.0

	opacityBase      = 0.02
	opacityAmplitude = 0.04
)

// Dot is a single point in the animated field. Dots are immutable once
// generated; all per-frame variation happens in the shader from the
// uploaded attributes and the clock uniform.
type Dot struct {
	// Position in surface pixel space, top-left origin.
	Position mgl32.Vec2

	// Speed multiplies the clock, controlling oscillation frequency.
	Speed float32

	// PhaseOffset decorrelates dots so they do not pulse in unison.
	PhaseOffset float32
}

// Grid holds the full dot set covering a surface. A Grid is built once
// per surface size and replaced wholesale on resize.
type Grid struct {
	Dots []Dot
	Cols int
	Rows int
}

// BuildGrid lays out a regular grid of dots covering a surface of
// w by h pixels with the given cell size. The grid is centered: any
// remainder pixels are split evenly as border margin. Speed and phase
// are drawn per dot from rng.
//
// A surface smaller than cellSize in either dimension yields an empty
// grid; callers render nothing in that case.
func BuildGrid(w, h, cellSize int, rng *rand.Rand) *Grid {
	cols := w / cellSize
	rows := h / cellSize
	if cols <= 0 || rows <= 0 {
		return &Grid{}
	}

	marginX := float32(w-cols*cellSize) / 2
	marginY := float32(h-rows*cellSize) / 2
	half := float32(cellSize) / 2

	dots := make([]Dot, 0, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			dots = append(dots, Dot{
				Position: mgl32.Vec2{
					marginX + float32(i*cellSize) + half,
					marginY + float32(j*cellSize) + half,
				},
				Speed:       speedMin + rng.Float32()*(speedMax-speedMin),
				PhaseOffset: rng.Float32() * 2 * math.Pi,
			})
		}
	}

	return &Grid{Dots: dots, Cols: cols, Rows: rows}
}

// Count returns the number of dots in the grid.
func (g *Grid) Count() int { return len(g.Dots) }

// PositionData flattens dot positions into a tightly packed array,
// two floats per dot, ordered by dot index.
func (g *Grid) PositionData() []float32 {
	data := make([]float32, 0, 2*len(g.Dots))
	for _, d := range g.Dots {
		data = append(data, d.Position.X(), d.Position.Y())
	}
	return data
}

// SpeedData flattens dot speeds, one float per dot, same order as
// PositionData.
func (g *Grid) SpeedData() []float32 {
	data := make([]float32, len(g.Dots))
	for i, d := range g.Dots {
		data[i] = d.Speed
	}
	return data
}

// PhaseData flattens dot phase offsets, one float per dot, same order
// as PositionData.
func (g *Grid) PhaseData() []float32 {
	data := make([]float32, len(g.Dots))
	for i, d := range g.Dots {
		data[i] = d.PhaseOffset
	}
	return data
}

// Opacity is the pulse curve the vertex shader evaluates per dot:
// a sine oscillation that stays within [0.02, 0.10], so dots are
// always faint and never fully transparent.
func Opacity(clock, speed, phaseOffset float64) float64 {
	return opacityBase + (math.Sin(clock*speed+phaseOffset)+1.0)*opacityAmplitude
}
