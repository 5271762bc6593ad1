package core

import (
	"math"
	"math/rand"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestBuildGridDotCount(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		cellSize int
		want     int
	}{
		{name: "full HD", w: 1920, h: 1080, cellSize: 20, want: 96 * 54},
		{name: "800x600", w: 800, h: 600, cellSize: 20, want: 40 * 30},
		{name: "single cell", w: 20, h: 20, cellSize: 20, want: 1},
		{name: "remainder pixels", w: 50, h: 30, cellSize: 20, want: 2},
		{name: "smaller than cell", w: 19, h: 19, cellSize: 20, want: 0},
		{name: "narrow strip", w: 1920, h: 10, cellSize: 20, want: 0},
		{name: "zero surface", w: 0, h: 0, cellSize: 20, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := BuildGrid(tt.w, tt.h, tt.cellSize, testRand())
			if grid.Count() != tt.want {
				t.Errorf("BuildGrid(%d, %d, %d) count = %d, want %d",
					tt.w, tt.h, tt.cellSize, grid.Count(), tt.want)
			}
		})
	}
}

func TestBuildGridFullHDHasNoMargin(t *testing.T) {
	grid := BuildGrid(1920, 1080, 20, testRand())
	if grid.Cols != 96 || grid.Rows != 54 {
		t.Fatalf("grid = %dx%d, want 96x54", grid.Cols, grid.Rows)
	}
	first := grid.Dots[0].Position
	if first.X() != 10 || first.Y() != 10 {
		t.Errorf("first dot at (%v, %v), want cell center (10, 10)", first.X(), first.Y())
	}
}

func TestBuildGridCentering(t *testing.T) {
	// Odd remainders on both axes: 1013 = 50*20 + 13, 777 = 38*20 + 17.
	const w, h, c = 1013, 777, 20
	grid := BuildGrid(w, h, c, testRand())

	minX, maxX := float32(w), float32(0)
	minY, maxY := float32(h), float32(0)
	for _, d := range grid.Dots {
		minX = min(minX, d.Position.X())
		maxX = max(maxX, d.Position.X())
		minY = min(minY, d.Position.Y())
		maxY = max(maxY, d.Position.Y())
	}

	// The leftover margin on each axis splits evenly within one pixel.
	leftGap := minX - c/2
	rightGap := float32(w) - (maxX + c/2)
	if diff := math.Abs(float64(leftGap - rightGap)); diff > 1 {
		t.Errorf("horizontal margins %v and %v differ by %v", leftGap, rightGap, diff)
	}
	topGap := minY - c/2
	bottomGap := float32(h) - (maxY + c/2)
	if diff := math.Abs(float64(topGap - bottomGap)); diff > 1 {
		t.Errorf("vertical margins %v and %v differ by %v", topGap, bottomGap, diff)
	}
}

func TestBuildGridRandomRanges(t *testing.T) {
	grid := BuildGrid(1920, 1080, 20, testRand())
	for i, d := range grid.Dots {
		if d.Speed < 0.5 || d.Speed >= 2.0 {
			t.Fatalf("dot %d speed %v out of [0.5, 2.0)", i, d.Speed)
		}
		if d.PhaseOffset < 0 || d.PhaseOffset >= 2*math.Pi {
			t.Fatalf("dot %d phase %v out of [0, 2*pi)", i, d.PhaseOffset)
		}
	}
}

func TestAttributeDataLengths(t *testing.T) {
	sizes := []struct{ w, h int }{
		{800, 600},
		{1920, 1080},
		{19, 19},
	}

	for _, s := range sizes {
		grid := BuildGrid(s.w, s.h, 20, testRand())
		n := grid.Count()
		if got := len(grid.PositionData()); got != 2*n {
			t.Errorf("%dx%d: position data length %d, want %d", s.w, s.h, got, 2*n)
		}
		if got := len(grid.SpeedData()); got != n {
			t.Errorf("%dx%d: speed data length %d, want %d", s.w, s.h, got, n)
		}
		if got := len(grid.PhaseData()); got != n {
			t.Errorf("%dx%d: phase data length %d, want %d", s.w, s.h, got, n)
		}
	}
}

func TestAttributeDataIndexCorrespondence(t *testing.T) {
	grid := BuildGrid(400, 300, 20, testRand())
	positions := grid.PositionData()
	speeds := grid.SpeedData()
	phases := grid.PhaseData()

	for i, d := range grid.Dots {
		if positions[2*i] != d.Position.X() || positions[2*i+1] != d.Position.Y() {
			t.Fatalf("dot %d position mismatch in flat data", i)
		}
		if speeds[i] != d.Speed {
			t.Fatalf("dot %d speed mismatch in flat data", i)
		}
		if phases[i] != d.PhaseOffset {
			t.Fatalf("dot %d phase mismatch in flat data", i)
		}
	}
}

func TestOpacityBounds(t *testing.T) {
	rng := testRand()
	for i := 0; i < 10000; i++ {
		clock := rng.Float64() * 1000
		speed := 0.5 + rng.Float64()*1.5
		phase := rng.Float64() * 2 * math.Pi
		o := Opacity(clock, speed, phase)
		if o < 0.02-1e-9 || o > 0.10+1e-9 {
			t.Fatalf("Opacity(%v, %v, %v) = %v, out of [0.02, 0.10]", clock, speed, phase, o)
		}
	}

	// The curve actually reaches both extremes.
	if o := Opacity(math.Pi/2, 1, 0); math.Abs(o-0.10) > 1e-9 {
		t.Errorf("peak opacity = %v, want 0.10", o)
	}
	if o := Opacity(3*math.Pi/2, 1, 0); math.Abs(o-0.02) > 1e-9 {
		t.Errorf("trough opacity = %v, want 0.02", o)
	}
}
