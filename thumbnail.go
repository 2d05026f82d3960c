package atap

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// thumbnailCacheSize bounds the number of thumbnails a document keeps.
const thumbnailCacheSize = 512

// thumbKey identifies one rendering of one frame. Frame serials never repeat
// within a document and pixmap generations never repeat within a process,
// so a stale key can never match a changed frame.
type thumbKey struct {
	serial uint64
	gen    uint64
	w, h   int
}

// Thumbnail returns frame i scaled to fit inside w x h, centered over the
// background color. Results are cached until the frame's pixels change.
// The returned image is shared and must not be modified.
func (d *Document) Thumbnail(i, w, h int) (*image.NRGBA, error) {
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	if w < 1 || h < 1 || w > MaxCanvasSize || h > MaxCanvasSize {
		return nil, fmt.Errorf("%w: thumbnail %dx%d", ErrInvalidSize, w, h)
	}
	f := d.frames[i]
	key := thumbKey{serial: f.serial, gen: f.pixmap.gen, w: w, h: h}
	return d.thumbs.GetOrCreate(key, func() *image.NRGBA {
		return RenderThumbnail(f.pixmap, w, h, d.background)
	}), nil
}

// RenderThumbnail scales pm to fit inside w x h with its aspect ratio kept.
// The letterbox area is filled with bg.
func RenderThumbnail(pm *Pixmap, w, h int, bg Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)

	src := pm.view()
	r := fitRect(src.Rect.Size(), dst.Bounds())
	if r.Dx() >= src.Rect.Dx() {
		// Upscaling a pixel drawing should keep hard edges.
		draw.NearestNeighbor.Scale(dst, r, src, src.Rect, draw.Over, nil)
	} else {
		draw.ApproxBiLinear.Scale(dst, r, src, src.Rect, draw.Over, nil)
	}
	return dst
}

// dropThumbnails evicts every cached rendering of f. A frame brought back by
// undo is rendered again on demand.
func (d *Document) dropThumbnails(f *Frame) {
	n := d.thumbs.DeleteFunc(func(k thumbKey) bool { return k.serial == f.serial })
	if n == 0 {
		return
	}
	st := d.thumbs.Stats()
	Logger().Debug("atap: thumbnails dropped", "frame", f.serial, "dropped", n,
		"cached", st.Len, "hit_rate", st.HitRate)
}
