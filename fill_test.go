package atap

import (
	"errors"
	"testing"
)

// ring draws a one-pixel square outline with corners (x0, y0) and (x1, y1).
func ring(pm *Pixmap, x0, y0, x1, y1 int, c Color) {
	for x := x0; x <= x1; x++ {
		pm.setPixel(x, y0, c)
		pm.setPixel(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		pm.setPixel(x0, y, c)
		pm.setPixel(x1, y, c)
	}
}

func countColor(pm *Pixmap, c Color) int {
	n := 0
	for y := range pm.height {
		for x := range pm.width {
			if pm.pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFloodFillUniformCanvas(t *testing.T) {
	pm := NewPixmap(13, 7)
	pm.Clear(White)

	p, err := FloodFill(pm, 6, 3, Red, 0)
	if err != nil {
		t.Fatalf("FloodFill() = %v", err)
	}
	if n := countColor(pm, Red); n != 13*7 {
		t.Errorf("filled %d pixels, want %d", n, 13*7)
	}
	if p.Rect != pm.Bounds() {
		t.Errorf("patch rect = %v, want %v", p.Rect, pm.Bounds())
	}
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Clear(White)
	ring(pm, 2, 2, 7, 7, Black)

	if _, err := FloodFill(pm, 4, 4, Blue, 0); err != nil {
		t.Fatalf("FloodFill() = %v", err)
	}
	if n := countColor(pm, Blue); n != 16 {
		t.Errorf("interior fill = %d pixels, want 16", n)
	}
	if c := pm.pixel(0, 0); c != White {
		t.Errorf("outside pixel = %v, want white", c)
	}
	if c := pm.pixel(2, 2); c != Black {
		t.Errorf("boundary pixel = %v, want black", c)
	}
}

func TestFloodFillFourConnected(t *testing.T) {
	// A diagonal gap does not connect regions.
	pm := NewPixmap(2, 2)
	pm.Clear(White)
	pm.setPixel(1, 0, Black)
	pm.setPixel(0, 1, Black)

	if _, err := FloodFill(pm, 0, 0, Red, 0); err != nil {
		t.Fatal(err)
	}
	if c := pm.pixel(1, 1); c != White {
		t.Errorf("diagonal neighbour = %v, want white", c)
	}
}

func TestFloodFillTolerance(t *testing.T) {
	tests := []struct {
		tolerance uint8
		want      int
	}{
		{0, 4},
		{9, 4},
		{10, 8},
		{255, 12},
	}
	for _, tt := range tests {
		pm := NewPixmap(12, 1)
		for x := range 12 {
			switch {
			case x < 4:
				pm.setPixel(x, 0, RGB(100, 100, 100))
			case x < 8:
				pm.setPixel(x, 0, RGB(110, 95, 100)) // max channel diff 10
			default:
				pm.setPixel(x, 0, Black)
			}
		}
		if _, err := FloodFill(pm, 0, 0, Red, tt.tolerance); err != nil {
			t.Fatal(err)
		}
		if n := countColor(pm, Red); n != tt.want {
			t.Errorf("tolerance %d filled %d, want %d", tt.tolerance, n, tt.want)
		}
	}
}

func TestFloodFillErrors(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(Green)
	before := pm.Clone()

	if _, err := FloodFill(pm, 4, 0, Red, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("FloodFill outside = %v, want ErrOutOfBounds", err)
	}
	if _, err := FloodFill(pm, 1, 1, Green, 0); !errors.Is(err, ErrNoChange) {
		t.Errorf("FloodFill same color = %v, want ErrNoChange", err)
	}
	if !pm.Equal(before) {
		t.Error("failed fill modified the pixmap")
	}
}

func TestFloodFillPatchReverts(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.Clear(White)
	ring(pm, 1, 1, 5, 5, Black)
	before := pm.Clone()

	p, err := FloodFill(pm, 3, 3, Yellow, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := 3 * 3 * 4 * 2; p.Size() != want {
		t.Errorf("patch size = %d, want %d (interior box only)", p.Size(), want)
	}
	p.revert(pm)
	if !pm.Equal(before) {
		t.Error("revert did not restore the pixels")
	}
}

func TestFloodSelect(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.Clear(White)
	ring(pm, 2, 2, 7, 7, Black)
	before := pm.Clone()

	m, err := FloodSelect(pm, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.Count(), 100-36; got != want {
		t.Errorf("selected %d pixels, want %d", got, want)
	}
	if m.Contains(4, 4) {
		t.Error("interior should not be selected from outside")
	}
	if !pm.Equal(before) {
		t.Error("FloodSelect modified the pixmap")
	}
}
