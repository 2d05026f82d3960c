package atap

import (
	"fmt"
	"math"
	"time"
)

// MaxHoldCount is the largest number of video frames one drawn frame may occupy.
const MaxHoldCount = 1000

// Frame is one drawn image of the animation.
//
// A Frame exclusively owns its Pixmap. Its index is its position in the
// document and is re-assigned when frames are inserted, deleted or
// reordered. The hold count is the number of encoded video frames it
// occupies on export.
type Frame struct {
	index  int
	serial uint64
	hold   int
	pixmap *Pixmap
}

// Index returns the frame's position in the document.
func (f *Frame) Index() int {
	return f.index
}

// HoldCount returns how many video frames this frame occupies.
func (f *Frame) HoldCount() int {
	return f.hold
}

// Pixmap returns the frame's pixels for rendering. Callers must not modify
// it directly; edits go through the Document so they are recorded.
func (f *Frame) Pixmap() *Pixmap {
	return f.pixmap
}

// Duration returns how long the frame is shown at the given frame rate.
func (f *Frame) Duration(fps int) time.Duration {
	return holdDuration(f.hold, fps)
}

// HoldForDuration converts a display duration to a hold count at fps,
// rounding to the nearest frame and never returning less than 1.
func HoldForDuration(d time.Duration, fps int) int {
	n := int(math.Round(d.Seconds() * float64(fps)))
	if n < 1 {
		return 1
	}
	return n
}

func holdDuration(hold, fps int) time.Duration {
	return time.Duration(hold) * time.Second / time.Duration(fps)
}

func validateHold(n int) error {
	if n < 1 || n > MaxHoldCount {
		return fmt.Errorf("%w: %d", ErrInvalidHoldCount, n)
	}
	return nil
}
