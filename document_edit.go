package atap

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Stroke draws a freehand path on the active frame with a round brush.
// Parts of the path outside the canvas are clipped. Strokes that change no
// pixel are not recorded.
func (d *Document) Stroke(path []Point, radius int, c Color) error {
	if err := d.editable(); err != nil {
		return err
	}
	d.palette.noteUse(c)
	return d.recordPatch(Stroke(d.ActivePixmap(), path, radius, c), "stroke")
}

// Erase paints the background color along path on the active frame.
func (d *Document) Erase(path []Point, radius int) error {
	if err := d.editable(); err != nil {
		return err
	}
	return d.recordPatch(Erase(d.ActivePixmap(), path, radius, d.background), "erase")
}

// Fill flood-fills the active frame from (x, y). It returns ErrNoChange when
// c already is the seed color and ErrOutOfBounds for a seed off the canvas.
func (d *Document) Fill(x, y int, c Color, tolerance uint8) error {
	if err := d.editable(); err != nil {
		return err
	}
	patch, err := FloodFill(d.ActivePixmap(), x, y, c, tolerance)
	if err != nil {
		return err
	}
	d.palette.noteUse(c)
	return d.recordPatch(patch, "fill")
}

// SelectRegion returns the flood-selected region around (x, y) on the active
// frame, for use with GradientFill.
func (d *Document) SelectRegion(x, y int, tolerance uint8) (*Mask, error) {
	return FloodSelect(d.ActivePixmap(), x, y, tolerance)
}

// GradientFill paints g into region of the active frame, or the whole frame
// when region is nil.
func (d *Document) GradientFill(region *Mask, g Gradient) error {
	if err := d.editable(); err != nil {
		return err
	}
	return d.gradientFill(region, g, "gradient")
}

// GradientFillAt selects the region around (x, y) and fills it with g.
func (d *Document) GradientFillAt(x, y int, tolerance uint8, g Gradient) error {
	if err := d.editable(); err != nil {
		return err
	}
	region, err := d.SelectRegion(x, y, tolerance)
	if err != nil {
		return err
	}
	return d.gradientFill(region, g, "gradient at")
}

func (d *Document) gradientFill(region *Mask, g Gradient, name string) error {
	patch, err := GradientFill(d.ActivePixmap(), region, g)
	if err != nil {
		return err
	}
	return d.recordPatch(patch, name)
}

// ClearFrame resets the active frame to the background color.
func (d *Document) ClearFrame() error {
	if err := d.editable(); err != nil {
		return err
	}
	pm := d.ActivePixmap()
	return d.recordPatch(wholePatch(pm, func() { pm.Clear(d.background) }), "clear frame")
}

// ImportImage replaces the active frame with img scaled to fit the canvas,
// centered over the background color.
func (d *Document) ImportImage(img image.Image) error {
	if err := d.editable(); err != nil {
		return err
	}
	src := img.Bounds()
	if src.Empty() {
		return fmt.Errorf("%w: empty image", ErrInvalidSize)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(d.background.NRGBA()), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, fitRect(src.Size(), dst.Bounds()), img, src, draw.Over, nil)

	pm := d.ActivePixmap()
	return d.recordPatch(wholePatch(pm, func() { copy(pm.data, dst.Pix) }), "import image")
}

// AddColor appends a palette entry.
func (d *Document) AddColor(c Color, name string) error {
	if err := d.editable(); err != nil {
		return err
	}
	if d.palette.Len() >= MaxPaletteSize {
		return fmt.Errorf("%w: palette is full", ErrPaletteIndex)
	}
	after := d.palette.clone()
	after.entries = append(after.entries, PaletteEntry{Color: c, Name: name})
	d.commit(&paletteDelta{before: d.palette.clone(), after: after, name: "add color"})
	return nil
}

// RemoveColor deletes palette entry i.
func (d *Document) RemoveColor(i int) error {
	if err := d.editable(); err != nil {
		return err
	}
	if _, err := d.palette.Entry(i); err != nil {
		return err
	}
	after := d.palette.clone()
	after.entries = append(after.entries[:i], after.entries[i+1:]...)
	d.commit(&paletteDelta{before: d.palette.clone(), after: after, name: "remove color"})
	return nil
}

// SetColor changes the color of palette entry i.
func (d *Document) SetColor(i int, c Color) error {
	if err := d.editable(); err != nil {
		return err
	}
	if _, err := d.palette.Entry(i); err != nil {
		return err
	}
	after := d.palette.clone()
	after.entries[i].Color = c
	d.commit(&paletteDelta{before: d.palette.clone(), after: after, name: "edit color"})
	return nil
}

// recordPatch stores a tool result for the active frame. Nil or unchanged
// patches are dropped.
func (d *Document) recordPatch(p *Patch, name string) error {
	if p == nil || !p.Changed() {
		return nil
	}
	d.record(&pixelDelta{frame: d.active, patch: p, name: name})
	Logger().Debug("atap: edit", "edit", name, "frame", d.active,
		"rect", p.Rect, "bytes", p.Size())
	return nil
}

// fitRect returns the largest rectangle with the aspect ratio of size that
// fits inside bounds, centered.
func fitRect(size image.Point, bounds image.Rectangle) image.Rectangle {
	bw, bh := bounds.Dx(), bounds.Dy()
	w, h := bw, size.Y*bw/size.X
	if h > bh {
		w, h = size.X*bh/size.Y, bh
	}
	w, h = max(w, 1), max(h, 1)
	x := bounds.Min.X + (bw-w)/2
	y := bounds.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
