package atap

import (
	"fmt"
	"time"
)

// PlaybackState is the state of a Player.
type PlaybackState int

const (
	// Stopped means no preview is running and the document is editable.
	Stopped PlaybackState = iota
	// Playing means ticks advance the preview.
	Playing
	// Paused keeps the position and the read-only lock but ignores ticks.
	Paused
)

// String returns the state name.
func (s PlaybackState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("PlaybackState(%d)", int(s))
	}
}

// Player previews a document by stepping through its frames.
//
// Player has no timer of its own: the caller drives it with Tick, usually
// from a fixed-rate UI timer, and renders Current afterwards. Each frame is
// shown for HoldCount/FPS seconds and playback loops forever. While playing
// or paused the document rejects edits with ErrPreviewActive.
//
// Player runs on the caller's goroutine and is not safe for concurrent use.
type Player struct {
	doc     *Document
	state   PlaybackState
	index   int
	restore int

	// clock is the time spent on the current frame multiplied by FPS, so
	// a frame of hold h ends exactly at h*time.Second.
	clock int64
	// slack forgives the sub-nanosecond truncation of each tick, e.g.
	// time.Second/6, accumulated since the frame started.
	slack int64
}

// NewPlayer creates a stopped player for doc.
func NewPlayer(doc *Document) *Player {
	return &Player{doc: doc}
}

// State returns the playback state.
func (p *Player) State() PlaybackState { return p.state }

// Index returns the index of the frame being shown.
func (p *Player) Index() int { return p.index }

// Current returns the pixels to render.
func (p *Player) Current() *Pixmap {
	if p.state == Stopped {
		return p.doc.ActivePixmap()
	}
	return p.doc.frames[p.index].pixmap
}

// Play starts playback from the first frame, or resumes when paused.
// It fails with ErrPreviewActive if another player already holds the document.
func (p *Player) Play() error {
	switch p.state {
	case Playing:
		return nil
	case Paused:
		p.state = Playing
		return nil
	}
	if p.doc.preview {
		return ErrPreviewActive
	}
	p.doc.preview = true
	p.restore = p.doc.active
	p.index = 0
	p.clock, p.slack = 0, 0
	p.state = Playing
	Logger().Debug("atap: playback started", "frames", len(p.doc.frames), "fps", p.doc.fps)
	return nil
}

// Pause halts playback without losing the position.
func (p *Player) Pause() {
	if p.state == Playing {
		p.state = Paused
	}
}

// Stop ends playback, releases the document and reselects the frame that
// was active when playback began.
func (p *Player) Stop() {
	if p.state == Stopped {
		return
	}
	p.state = Stopped
	p.doc.preview = false
	p.doc.focus(p.restore)
	p.clock, p.slack = 0, 0
	Logger().Debug("atap: playback stopped")
}

// Tick advances the preview clock by dt and reports whether the shown frame
// changed. A long tick may skip several frames; whole loops are folded away
// first, so the cost of a tick is bounded by the number of frames.
//
// A tick that falls short of a frame boundary by less than one nanosecond,
// as time.Second/FPS does when FPS does not divide 1e9, still reaches it.
func (p *Player) Tick(dt time.Duration) bool {
	if p.state != Playing || dt <= 0 {
		return false
	}
	fps := int64(p.doc.fps)
	loop := int64(p.doc.TotalHoldCount())
	sec := int64(time.Second)

	whole, rest := int64(dt)/sec, int64(dt)%sec
	p.clock += (whole*fps%loop)*sec + rest*fps
	p.clock %= loop * sec
	p.slack += fps - 1

	changed := false
	for {
		end := int64(p.doc.frames[p.index].hold) * sec
		if p.clock+p.slack < end {
			break
		}
		p.clock = max(p.clock-end, 0)
		p.slack = 0
		p.index = (p.index + 1) % len(p.doc.frames)
		changed = true
	}
	return changed
}
