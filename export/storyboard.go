package export

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/arunpranav-at/atap"
)

// Storyboard renders a contact sheet: one captioned thumbnail per frame,
// laid out in a grid. Captions read "Frame N", numbered from 1 like the
// frame strip of the editor.
type Storyboard struct {
	// Columns per row. Default 6.
	Columns int
	// ThumbWidth and ThumbHeight size each thumbnail. Default 80x60.
	ThumbWidth  int
	ThumbHeight int
	// Padding around and between cells. Default 8.
	Padding int
	// FontSize of captions in pixels. Default 12.
	FontSize float64
	// Sheet is the sheet background. Default white.
	Sheet atap.Color
	// Ink is the caption color. Default black.
	Ink atap.Color
}

var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
	goRegularErr  error
)

func captionFont() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

func (sb *Storyboard) defaults() Storyboard {
	o := *sb
	if o.Columns <= 0 {
		o.Columns = 6
	}
	if o.ThumbWidth <= 0 {
		o.ThumbWidth = 80
	}
	if o.ThumbHeight <= 0 {
		o.ThumbHeight = 60
	}
	if o.Padding <= 0 {
		o.Padding = 8
	}
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	if o.Sheet == (atap.Color{}) {
		o.Sheet = atap.White
	}
	if o.Ink == (atap.Color{}) {
		o.Ink = atap.Black
	}
	return o
}

// Render draws the contact sheet for s.
func (sb *Storyboard) Render(s *atap.Snapshot) (*image.NRGBA, error) {
	if err := s.Validate(); err != nil {
		return nil, exportErr("storyboard", "", err)
	}
	o := sb.defaults()

	f, err := captionFont()
	if err != nil {
		return nil, exportErr("storyboard", "", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    o.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, exportErr("storyboard", "", err)
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	captionH := (m.Ascent + m.Descent).Ceil()
	cellW := o.ThumbWidth
	cellH := o.ThumbHeight + o.Padding/2 + captionH

	n := len(s.Frames)
	cols := min(o.Columns, n)
	rows := (n + cols - 1) / cols
	sheet := image.NewNRGBA(image.Rect(0, 0,
		o.Padding+cols*(cellW+o.Padding),
		o.Padding+rows*(cellH+o.Padding)))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(o.Sheet.NRGBA()), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: sheet, Src: image.NewUniform(o.Ink.NRGBA()), Face: face}
	for i, fr := range s.Frames {
		x := o.Padding + (i%cols)*(cellW+o.Padding)
		y := o.Padding + (i/cols)*(cellH+o.Padding)

		thumb := atap.RenderThumbnail(fr.Pixmap, o.ThumbWidth, o.ThumbHeight, s.Background)
		r := image.Rect(x, y, x+o.ThumbWidth, y+o.ThumbHeight)
		draw.Draw(sheet, r, thumb, image.Point{}, draw.Src)

		label := fmt.Sprintf("Frame %d", i+1)
		if fr.Hold > 1 {
			label = fmt.Sprintf("Frame %d ×%d", i+1, fr.Hold)
		}
		adv := d.MeasureString(label)
		tx := fixed.I(x) + (fixed.I(cellW)-adv)/2
		d.Dot = fixed.Point26_6{X: tx, Y: fixed.I(r.Max.Y+o.Padding/2) + m.Ascent}
		d.DrawString(label)
	}
	return sheet, nil
}

// WriteFile renders the contact sheet for s and saves it as PNG.
func (sb *Storyboard) WriteFile(path string, s *atap.Snapshot) error {
	img, err := sb.Render(s)
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return exportErr("storyboard", path, err)
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return exportErr("storyboard", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return exportErr("storyboard", path, err)
	}
	if err := f.Close(); err != nil {
		return exportErr("storyboard", path, err)
	}
	atap.Logger().Info("export: storyboard written", "path", path, "frames", len(s.Frames))
	return nil
}
