package atap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync/atomic"

	"golang.org/x/image/draw"
)

// MaxCanvasSize is the largest accepted width or height of a pixmap.
const MaxCanvasSize = 8192

// Pixmap represents a rectangular pixel buffer.
//
// Pixels are stored row-major as non-premultiplied RGBA, 4 bytes per pixel,
// and len(Data()) is always Width()*Height()*4. The dimensions never change;
// Resize returns a new Pixmap.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
	gen    uint64  // unique per content state, see touch
}

// generation hands out pixmap generations. A single process-wide counter
// keeps generations unique across pixmaps, so (frame, generation) pairs
// never collide after a frame's pixmap is replaced.
var generation atomic.Uint64

// NewPixmap creates a new pixmap with the given dimensions, filled with
// transparent black. It panics if either dimension is below 1, matching
// image.NewRGBA's treatment of impossible sizes.
func NewPixmap(width, height int) *Pixmap {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("atap: invalid pixmap size %dx%d", width, height))
	}
	p := &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	p.touch()
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
// Callers must not modify it; use SetPixel or the document tools instead.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Generation returns a counter that changes whenever the pixels change.
func (p *Pixmap) Generation() uint64 {
	return p.gen
}

// Pixel returns the color of a single pixel.
func (p *Pixmap) Pixel(x, y int) (Color, error) {
	if !p.inBounds(x, y) {
		return Color{}, p.outOfBounds(x, y)
	}
	return p.pixel(x, y), nil
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c Color) error {
	if !p.inBounds(x, y) {
		return p.outOfBounds(x, y)
	}
	p.setPixel(x, y, c)
	p.touch()
	return nil
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
	p.touch()
}

// Fill sets every pixel of r to c. r is intersected with the pixmap bounds.
func (p *Pixmap) Fill(r image.Rectangle, c Color) {
	r = r.Intersect(p.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := p.data[(y*p.width+r.Min.X)*4 : (y*p.width+r.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
	p.touch()
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
		gen:    p.gen,
	}
	copy(c.data, p.data)
	return c
}

// Resize returns a new pixmap of the given size anchored at the top-left
// corner. Overlapping pixels are copied; new area is filled with bg.
func (p *Pixmap) Resize(width, height int, bg Color) *Pixmap {
	out := NewPixmap(width, height)
	out.Clear(bg)

	w := min(width, p.width)
	h := min(height, p.height)
	for y := 0; y < h; y++ {
		src := p.data[y*p.width*4 : (y*p.width+w)*4]
		copy(out.data[y*width*4:], src)
	}
	return out
}

// Equal reports whether both pixmaps have the same size and pixels.
func (p *Pixmap) Equal(other *Pixmap) bool {
	if p.width != other.width || p.height != other.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image, converting it to
// non-premultiplied RGBA.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	draw.Draw(pm.view(), pm.Bounds(), img, bounds.Min, draw.Src)
	return pm
}

// FromData wraps a copy of raw RGBA bytes in a pixmap.
// It returns ErrInvalidSize if data does not hold exactly width*height pixels.
func FromData(width, height int, data []uint8) (*Pixmap, error) {
	if width < 1 || height < 1 || len(data) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidSize, len(data), width, height)
	}
	pm := NewPixmap(width, height)
	copy(pm.data, data)
	return pm, nil
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if !p.inBounds(x, y) {
		return color.NRGBA{}
	}
	return p.pixel(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// view returns an image.NRGBA sharing the pixmap's memory. Writes through
// the view bypass touch.
func (p *Pixmap) view() *image.NRGBA {
	return &image.NRGBA{Pix: p.data, Stride: p.width * 4, Rect: p.Bounds()}
}

func (p *Pixmap) inBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

func (p *Pixmap) outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, p.width, p.height)
}

// touch assigns a fresh generation after a mutation.
func (p *Pixmap) touch() {
	p.gen = generation.Add(1)
}

// pixel reads without bounds checks.
func (p *Pixmap) pixel(x, y int) Color {
	i := (y*p.width + x) * 4
	return Color{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// setPixel writes without bounds checks and without bumping the generation.
func (p *Pixmap) setPixel(x, y int, c Color) {
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// readRect copies the pixels of r (which must lie inside p) into a new slice.
func (p *Pixmap) readRect(r image.Rectangle) []uint8 {
	w := r.Dx()
	out := make([]uint8, w*r.Dy()*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := p.data[(y*p.width+r.Min.X)*4 : (y*p.width+r.Max.X)*4]
		copy(out[(y-r.Min.Y)*w*4:], src)
	}
	return out
}

// writeRect copies pixels previously produced by readRect back into r.
func (p *Pixmap) writeRect(r image.Rectangle, pix []uint8) {
	w := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := pix[(y-r.Min.Y)*w*4 : (y-r.Min.Y+1)*w*4]
		copy(p.data[(y*p.width+r.Min.X)*4:], row)
	}
	p.touch()
}
