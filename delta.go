package atap

import "image"

// delta is one reversible document edit. apply and revert return the frame
// index that should become active afterwards, or -1 to keep the current one.
type delta interface {
	apply(d *Document) int
	revert(d *Document) int
	size() int
	label() string
}

// pixelDelta is a region patch on one frame.
type pixelDelta struct {
	frame int
	patch *Patch
	name  string
}

func (p *pixelDelta) apply(d *Document) int {
	p.patch.apply(d.frames[p.frame].pixmap)
	return p.frame
}

func (p *pixelDelta) revert(d *Document) int {
	p.patch.revert(d.frames[p.frame].pixmap)
	return p.frame
}

func (p *pixelDelta) size() int     { return p.patch.Size() }
func (p *pixelDelta) label() string { return p.name }

// insertFrameDelta adds a whole frame. The frame value is the one that lives
// in the document while the insertion is applied.
type insertFrameDelta struct {
	at    int
	frame *Frame
	name  string
}

func (i *insertFrameDelta) apply(d *Document) int {
	d.insertFrame(i.at, i.frame)
	return i.at
}

func (i *insertFrameDelta) revert(d *Document) int {
	d.removeFrame(i.at)
	return min(i.at, len(d.frames)-1)
}

func (i *insertFrameDelta) size() int     { return frameSize(i.frame) }
func (i *insertFrameDelta) label() string { return i.name }

// deleteFrameDelta removes a whole frame and keeps it for undo.
type deleteFrameDelta struct {
	at    int
	frame *Frame
}

func (r *deleteFrameDelta) apply(d *Document) int {
	r.frame = d.removeFrame(r.at)
	return min(r.at, len(d.frames)-1)
}

func (r *deleteFrameDelta) revert(d *Document) int {
	d.insertFrame(r.at, r.frame)
	return r.at
}

func (r *deleteFrameDelta) size() int {
	if r.frame == nil {
		return 0
	}
	return frameSize(r.frame)
}

func (r *deleteFrameDelta) label() string { return "delete frame" }

// reorderDelta moves one frame.
type reorderDelta struct {
	from, to int
}

func (r *reorderDelta) apply(d *Document) int {
	d.moveFrame(r.from, r.to)
	return r.to
}

func (r *reorderDelta) revert(d *Document) int {
	d.moveFrame(r.to, r.from)
	return r.from
}

func (r *reorderDelta) size() int     { return 0 }
func (r *reorderDelta) label() string { return "move frame" }

// resizeDelta resizes every frame at once. It keeps the pre-resize pixmaps so
// cropped pixels come back on undo.
type resizeDelta struct {
	oldSize, newSize image.Point
	bg               Color
	old              []*Pixmap
}

func (r *resizeDelta) apply(d *Document) int {
	r.old = make([]*Pixmap, len(d.frames))
	for i, f := range d.frames {
		r.old[i] = f.pixmap
		f.pixmap = f.pixmap.Resize(r.newSize.X, r.newSize.Y, r.bg)
	}
	d.width, d.height = r.newSize.X, r.newSize.Y
	return -1
}

func (r *resizeDelta) revert(d *Document) int {
	for i, f := range d.frames {
		f.pixmap = r.old[i]
	}
	d.width, d.height = r.oldSize.X, r.oldSize.Y
	return -1
}

func (r *resizeDelta) size() int {
	n := 0
	for _, pm := range r.old {
		n += len(pm.data)
	}
	return n
}

func (r *resizeDelta) label() string { return "resize canvas" }

// fpsDelta changes the frame rate.
type fpsDelta struct {
	old, new int
}

func (f *fpsDelta) apply(d *Document) int  { d.fps = f.new; return -1 }
func (f *fpsDelta) revert(d *Document) int { d.fps = f.old; return -1 }
func (f *fpsDelta) size() int              { return 0 }
func (f *fpsDelta) label() string          { return "set fps" }

// holdDelta changes one frame's hold count.
type holdDelta struct {
	frame    int
	old, new int
}

func (h *holdDelta) apply(d *Document) int {
	d.frames[h.frame].hold = h.new
	return h.frame
}

func (h *holdDelta) revert(d *Document) int {
	d.frames[h.frame].hold = h.old
	return h.frame
}

func (h *holdDelta) size() int     { return 0 }
func (h *holdDelta) label() string { return "set frame duration" }

// paletteDelta swaps whole palettes. Usage counters travel with them.
type paletteDelta struct {
	before, after *Palette
	name          string
}

func (p *paletteDelta) apply(d *Document) int  { d.palette = p.after.clone(); return -1 }
func (p *paletteDelta) revert(d *Document) int { d.palette = p.before.clone(); return -1 }
func (p *paletteDelta) size() int              { return (len(p.before.entries) + len(p.after.entries)) * 32 }
func (p *paletteDelta) label() string          { return p.name }

func frameSize(f *Frame) int {
	return len(f.pixmap.data)
}
