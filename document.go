package atap

import (
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/arunpranav-at/atap/internal/cache"
)

// Document is an animation project: an ordered, non-empty sequence of
// frames sharing one canvas size, plus frame rate, background, palette and
// undo history.
//
// Every mutating method builds a history delta, applies it and records it,
// so History always matches the visible state. While a Player is previewing
// the document, mutating methods fail with ErrPreviewActive.
//
// Document is not safe for concurrent use.
type Document struct {
	id         uuid.UUID
	title      string
	width      int
	height     int
	fps        int
	background Color
	palette    *Palette

	frames []*Frame
	active int
	serial uint64

	history *History
	preview bool
	thumbs  *cache.Cache[thumbKey, *image.NRGBA]
}

// NewDocument creates a document holding one blank frame.
func NewDocument(opts ...DocumentOption) (*Document, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateSize(o.width, o.height); err != nil {
		return nil, err
	}
	if err := validateFPS(o.fps); err != nil {
		return nil, err
	}
	if o.palette == nil {
		o.palette = DefaultPalette()
	}

	d := newDocument(uuid.New(), o)
	d.frames = []*Frame{d.blankFrame()}
	Logger().Debug("atap: document created",
		"id", d.id, "width", d.width, "height", d.height, "fps", d.fps)
	return d, nil
}

func newDocument(id uuid.UUID, o documentOptions) *Document {
	return &Document{
		id:         id,
		title:      o.title,
		width:      o.width,
		height:     o.height,
		fps:        o.fps,
		background: o.background,
		palette:    o.palette,
		history:    newHistory(o.historyLimit),
		thumbs:     cache.New[thumbKey, *image.NRGBA](thumbnailCacheSize),
	}
}

// ID returns the project identifier.
func (d *Document) ID() uuid.UUID { return d.id }

// Title returns the project title.
func (d *Document) Title() string { return d.title }

// SetTitle renames the project. Titles are metadata and not part of the
// undo history.
func (d *Document) SetTitle(title string) { d.title = title }

// Width returns the canvas width.
func (d *Document) Width() int { return d.width }

// Height returns the canvas height.
func (d *Document) Height() int { return d.height }

// Size returns the canvas size as a point.
func (d *Document) Size() image.Point { return image.Pt(d.width, d.height) }

// FPS returns the frame rate.
func (d *Document) FPS() int { return d.fps }

// Background returns the background color.
func (d *Document) Background() Color { return d.background }

// Palette returns a copy of the palette.
func (d *Document) Palette() *Palette { return d.palette.clone() }

// History returns the undo history for inspection.
func (d *Document) History() *History { return d.history }

// Len returns the number of frames.
func (d *Document) Len() int { return len(d.frames) }

// Frame returns the frame at index i.
func (d *Document) Frame(i int) (*Frame, error) {
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	return d.frames[i], nil
}

// Frames returns the frames in playback order.
func (d *Document) Frames() []*Frame {
	out := make([]*Frame, len(d.frames))
	copy(out, d.frames)
	return out
}

// Active returns the index of the frame being edited.
func (d *Document) Active() int { return d.active }

// ActiveFrame returns the frame being edited.
func (d *Document) ActiveFrame() *Frame { return d.frames[d.active] }

// ActivePixmap returns the pixels of the frame being edited.
func (d *Document) ActivePixmap() *Pixmap { return d.frames[d.active].pixmap }

// Previewing reports whether a Player holds the document read-only.
func (d *Document) Previewing() bool { return d.preview }

// TotalHoldCount returns the number of video frames the animation expands to.
func (d *Document) TotalHoldCount() int {
	n := 0
	for _, f := range d.frames {
		n += f.hold
	}
	return n
}

// Duration returns the running time of one loop of the animation.
func (d *Document) Duration() time.Duration {
	return holdDuration(d.TotalHoldCount(), d.fps)
}

// SetFPS changes the frame rate.
func (d *Document) SetFPS(fps int) error {
	if err := d.editable(); err != nil {
		return err
	}
	if err := validateFPS(fps); err != nil {
		return err
	}
	if fps == d.fps {
		return nil
	}
	d.commit(&fpsDelta{old: d.fps, new: fps})
	return nil
}

// ResizeCanvas resizes every frame to width x height, anchored top-left.
// New area is filled with the background color. The whole resize is one
// history delta.
func (d *Document) ResizeCanvas(width, height int) error {
	if err := d.editable(); err != nil {
		return err
	}
	if err := validateSize(width, height); err != nil {
		return err
	}
	if width == d.width && height == d.height {
		return nil
	}
	d.commit(&resizeDelta{
		oldSize: image.Pt(d.width, d.height),
		newSize: image.Pt(width, height),
		bg:      d.background,
	})
	Logger().Debug("atap: canvas resized", "width", width, "height", height, "frames", len(d.frames))
	return nil
}

// Undo reverts the most recent edit.
func (d *Document) Undo() error {
	if err := d.editable(); err != nil {
		return err
	}
	e, ok := d.history.popUndo()
	if !ok {
		return ErrEmptyHistory
	}
	d.focus(e.delta.revert(d))
	d.history.redo = append(d.history.redo, e)
	Logger().Debug("atap: undo", "seq", e.seq, "edit", e.delta.label())
	return nil
}

// Redo reapplies the most recently undone edit.
func (d *Document) Redo() error {
	if err := d.editable(); err != nil {
		return err
	}
	e, ok := d.history.popRedo()
	if !ok {
		return ErrEmptyHistory
	}
	d.focus(e.delta.apply(d))
	d.history.undo = append(d.history.undo, e)
	Logger().Debug("atap: redo", "seq", e.seq, "edit", e.delta.label())
	return nil
}

// commit applies a delta and records it.
func (d *Document) commit(dl delta) {
	d.focus(dl.apply(d))
	d.history.push(dl)
}

// record stores a delta whose effect is already visible.
func (d *Document) record(dl delta) {
	d.history.push(dl)
}

func (d *Document) focus(i int) {
	if i >= 0 && i < len(d.frames) {
		d.active = i
	}
	if d.active >= len(d.frames) {
		d.active = len(d.frames) - 1
	}
}

func (d *Document) editable() error {
	if d.preview {
		return ErrPreviewActive
	}
	return nil
}

func (d *Document) checkIndex(i int) error {
	if i < 0 || i >= len(d.frames) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrFrameIndex, i, len(d.frames))
	}
	return nil
}

func validateSize(width, height int) error {
	if width < 1 || height < 1 || width > MaxCanvasSize || height > MaxCanvasSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

func validateFPS(fps int) error {
	if fps < 1 || fps > MaxFPS {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, fps)
	}
	return nil
}
