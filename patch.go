package atap

import "image"

// Patch is a region patch: the pixels of a bounding box before and after an
// edit. Applying Before undoes the edit, applying After redoes it. Memory use
// is proportional to the box, not to the canvas.
type Patch struct {
	Rect   image.Rectangle
	Before []uint8
	After  []uint8
}

// Size returns the number of bytes retained by the patch.
func (p *Patch) Size() int {
	return len(p.Before) + len(p.After)
}

// Changed reports whether any pixel differs between Before and After.
func (p *Patch) Changed() bool {
	for i := range p.Before {
		if p.Before[i] != p.After[i] {
			return true
		}
	}
	return false
}

func (p *Patch) revert(pm *Pixmap) { pm.writeRect(p.Rect, p.Before) }

func (p *Patch) apply(pm *Pixmap) { pm.writeRect(p.Rect, p.After) }

// recorder captures the original value of every pixel an edit writes.
// Each pixel is recorded once; a bitmap sized to the pixmap deduplicates.
type recorder struct {
	pm      *Pixmap
	seen    []uint64
	touched []touchedPixel
	box     image.Rectangle
}

type touchedPixel struct {
	idx int
	c   Color
}

func newRecorder(pm *Pixmap) *recorder {
	return &recorder{
		pm:   pm,
		seen: make([]uint64, (pm.width*pm.height+63)/64),
	}
}

// set writes c at (x, y), clipping silently outside the pixmap.
func (r *recorder) set(x, y int, c Color) {
	if !r.pm.inBounds(x, y) {
		return
	}
	idx := y*r.pm.width + x
	word, bit := idx/64, uint(idx&63)
	if r.seen[word]&(1<<bit) == 0 {
		r.seen[word] |= 1 << bit
		r.touched = append(r.touched, touchedPixel{idx: idx, c: r.pm.pixel(x, y)})
		r.box = r.box.Union(image.Rect(x, y, x+1, y+1))
	}
	r.pm.setPixel(x, y, c)
}

// finish builds the region patch of everything written so far.
// It returns nil when no pixel inside the pixmap was touched.
func (r *recorder) finish() *Patch {
	if len(r.touched) == 0 {
		return nil
	}
	r.pm.touch()

	after := r.pm.readRect(r.box)
	before := make([]uint8, len(after))
	copy(before, after)

	w := r.box.Dx()
	for _, t := range r.touched {
		x := t.idx%r.pm.width - r.box.Min.X
		y := t.idx/r.pm.width - r.box.Min.Y
		i := (y*w + x) * 4
		before[i+0] = t.c.R
		before[i+1] = t.c.G
		before[i+2] = t.c.B
		before[i+3] = t.c.A
	}

	return &Patch{Rect: r.box, Before: before, After: after}
}

// wholePatch records a full-pixmap edit performed by fn.
func wholePatch(pm *Pixmap, fn func()) *Patch {
	r := pm.Bounds()
	before := pm.readRect(r)
	fn()
	pm.touch()
	return &Patch{Rect: r, Before: before, After: pm.readRect(r)}
}
