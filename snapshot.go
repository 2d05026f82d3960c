package atap

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an immutable deep copy of a document's content. The project
// codec reads and writes snapshots, and exporters consume them so that
// edits made after an export starts never reach the export.
type Snapshot struct {
	ID         uuid.UUID
	Title      string
	Width      int
	Height     int
	FPS        int
	Background Color
	Palette    []PaletteEntry
	Frames     []SnapshotFrame
}

// SnapshotFrame is one frame of a Snapshot.
type SnapshotFrame struct {
	Hold   int
	Pixmap *Pixmap
}

// Snapshot copies the document's content. History is not included.
func (d *Document) Snapshot() *Snapshot {
	s := &Snapshot{
		ID:         d.id,
		Title:      d.title,
		Width:      d.width,
		Height:     d.height,
		FPS:        d.fps,
		Background: d.background,
		Palette:    d.palette.Entries(),
		Frames:     make([]SnapshotFrame, len(d.frames)),
	}
	for i, f := range d.frames {
		s.Frames[i] = SnapshotFrame{Hold: f.hold, Pixmap: f.pixmap.Clone()}
	}
	return s
}

// Validate checks the structural invariants of a snapshot.
func (s *Snapshot) Validate() error {
	if err := validateSize(s.Width, s.Height); err != nil {
		return err
	}
	if err := validateFPS(s.FPS); err != nil {
		return err
	}
	if len(s.Frames) == 0 {
		return fmt.Errorf("%w: snapshot has no frames", ErrFrameIndex)
	}
	if len(s.Palette) > MaxPaletteSize {
		return fmt.Errorf("%w: %d palette entries", ErrPaletteIndex, len(s.Palette))
	}
	for i, f := range s.Frames {
		if err := validateHold(f.Hold); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if f.Pixmap == nil || f.Pixmap.width != s.Width || f.Pixmap.height != s.Height {
			return fmt.Errorf("%w: frame %d does not match canvas %dx%d", ErrInvalidSize, i, s.Width, s.Height)
		}
	}
	return nil
}

// TotalHoldCount returns the number of video frames the snapshot expands to.
func (s *Snapshot) TotalHoldCount() int {
	n := 0
	for _, f := range s.Frames {
		n += f.Hold
	}
	return n
}

// Duration returns the running time of one loop.
func (s *Snapshot) Duration() time.Duration {
	return holdDuration(s.TotalHoldCount(), s.FPS)
}

// FromSnapshot builds a document from a snapshot. The document gets its own
// copy of every pixmap and starts with empty history and frame 0 active.
// Options other than WithHistoryLimit are overridden by the snapshot.
func FromSnapshot(s *Snapshot, opts ...DocumentOption) (*Document, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.width, o.height, o.fps = s.Width, s.Height, s.FPS
	o.background = s.Background
	o.title = s.Title
	o.palette = &Palette{entries: append([]PaletteEntry(nil), s.Palette...)}

	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	d := newDocument(id, o)
	d.frames = make([]*Frame, len(s.Frames))
	for i, sf := range s.Frames {
		d.serial++
		d.frames[i] = &Frame{index: i, serial: d.serial, hold: sf.Hold, pixmap: sf.Pixmap.Clone()}
	}
	return d, nil
}
