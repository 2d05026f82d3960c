package atap

import "math"

// Brush defaults taken from the drawing tools the editor ships with.
const (
	DefaultBrushRadius  = 3
	DefaultEraserRadius = 10
)

// StampSpacing returns the distance between consecutive brush stamps along a
// stroke segment: half the radius, and never less than one pixel.
func StampSpacing(radius int) float64 {
	return math.Max(1, float64(radius)/2)
}

// Stroke draws a freehand path into pm with a round brush of the given
// radius. Filled-circle stamps are placed along every segment at
// StampSpacing intervals, including both endpoints; a single-point path
// stamps once. Pixels outside pm are clipped silently.
//
// The returned patch covers the touched bounding box, or is nil when the
// whole path lies outside pm.
func Stroke(pm *Pixmap, path []Point, radius int, c Color) *Patch {
	if len(path) == 0 {
		return nil
	}
	if radius < 0 {
		radius = 0
	}

	rec := newRecorder(pm)
	if len(path) == 1 {
		stamp(rec, path[0], radius, c)
		return rec.finish()
	}

	spacing := StampSpacing(radius)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		n := int(math.Ceil(a.Distance(b) / spacing))
		if n < 1 {
			n = 1
		}
		for s := 0; s <= n; s++ {
			stamp(rec, a.Lerp(b, float64(s)/float64(n)), radius, c)
		}
	}
	return rec.finish()
}

// Erase is Stroke with the background color. Erasing paints the background
// rather than transparency, so exported frames stay opaque.
func Erase(pm *Pixmap, path []Point, radius int, bg Color) *Patch {
	return Stroke(pm, path, radius, bg)
}

// stamp writes a filled circle centered on the pixel containing p.
func stamp(rec *recorder, p Point, radius int, c Color) {
	cx := int(math.Floor(p.X))
	cy := int(math.Floor(p.Y))
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				rec.set(cx+dx, cy+dy, c)
			}
		}
	}
}
