package atap

import (
	"fmt"
	"time"
)

// AddFrame inserts a blank frame at index at (0..Len()) and makes it active.
func (d *Document) AddFrame(at int) (*Frame, error) {
	if err := d.editable(); err != nil {
		return nil, err
	}
	if at < 0 || at > len(d.frames) {
		return nil, fmt.Errorf("%w: insert at %d not in [0,%d]", ErrFrameIndex, at, len(d.frames))
	}
	f := d.blankFrame()
	d.commit(&insertFrameDelta{at: at, frame: f, name: "add frame"})
	return f, nil
}

// AppendFrame adds a blank frame after the last one.
func (d *Document) AppendFrame() (*Frame, error) {
	return d.AddFrame(len(d.frames))
}

// DuplicateFrame inserts a copy of frame i right after it and makes the copy
// active. The copy owns its own pixels.
func (d *Document) DuplicateFrame(i int) (*Frame, error) {
	if err := d.editable(); err != nil {
		return nil, err
	}
	if err := d.checkIndex(i); err != nil {
		return nil, err
	}
	src := d.frames[i]
	d.serial++
	f := &Frame{serial: d.serial, hold: src.hold, pixmap: src.pixmap.Clone()}
	d.commit(&insertFrameDelta{at: i + 1, frame: f, name: "duplicate frame"})
	return f, nil
}

// DeleteFrame removes frame i. A document always keeps at least one frame,
// so deleting the sole frame fails with ErrLastFrame.
func (d *Document) DeleteFrame(i int) error {
	if err := d.editable(); err != nil {
		return err
	}
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if len(d.frames) == 1 {
		return ErrLastFrame
	}
	d.commit(&deleteFrameDelta{at: i})
	return nil
}

// ReorderFrame moves the frame at from to index to, shifting the frames in
// between. The moved frame becomes active.
func (d *Document) ReorderFrame(from, to int) error {
	if err := d.editable(); err != nil {
		return err
	}
	if err := d.checkIndex(from); err != nil {
		return err
	}
	if err := d.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	d.commit(&reorderDelta{from: from, to: to})
	return nil
}

// SetActiveFrame selects the frame that editing tools act on.
// Selection is navigation, not an edit, and is not recorded in history.
func (d *Document) SetActiveFrame(i int) error {
	if err := d.checkIndex(i); err != nil {
		return err
	}
	d.active = i
	return nil
}

// SetHoldCount sets how many video frames frame i occupies.
func (d *Document) SetHoldCount(i, n int) error {
	if err := d.editable(); err != nil {
		return err
	}
	if err := d.checkIndex(i); err != nil {
		return err
	}
	if err := validateHold(n); err != nil {
		return err
	}
	if d.frames[i].hold == n {
		return nil
	}
	d.commit(&holdDelta{frame: i, old: d.frames[i].hold, new: n})
	return nil
}

// SetFrameDuration overrides how long frame i is shown. The duration is
// converted to a hold count at the current frame rate.
func (d *Document) SetFrameDuration(i int, dur time.Duration) error {
	return d.SetHoldCount(i, HoldForDuration(dur, d.fps))
}

// blankFrame returns a new background-filled frame with a fresh serial.
func (d *Document) blankFrame() *Frame {
	pm := NewPixmap(d.width, d.height)
	pm.Clear(d.background)
	d.serial++
	return &Frame{serial: d.serial, hold: 1, pixmap: pm}
}

func (d *Document) insertFrame(at int, f *Frame) {
	d.frames = append(d.frames, nil)
	copy(d.frames[at+1:], d.frames[at:])
	d.frames[at] = f
	d.renumber()
}

func (d *Document) removeFrame(at int) *Frame {
	f := d.frames[at]
	copy(d.frames[at:], d.frames[at+1:])
	d.frames[len(d.frames)-1] = nil
	d.frames = d.frames[:len(d.frames)-1]
	d.renumber()
	d.dropThumbnails(f)
	return f
}

func (d *Document) moveFrame(from, to int) {
	f := d.frames[from]
	d.frames = append(d.frames[:from], d.frames[from+1:]...)
	d.frames = append(d.frames, nil)
	copy(d.frames[to+1:], d.frames[to:])
	d.frames[to] = f
	d.renumber()
}

func (d *Document) renumber() {
	for i, f := range d.frames {
		f.index = i
	}
}
