package atap

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

func newTestDoc(t *testing.T, opts ...DocumentOption) *Document {
	t.Helper()
	opts = append([]DocumentOption{WithSize(16, 12), WithFPS(12)}, opts...)
	d, err := NewDocument(opts...)
	if err != nil {
		t.Fatalf("NewDocument() = %v", err)
	}
	return d
}

func TestNewDocumentDefaults(t *testing.T) {
	d, err := NewDocument()
	if err != nil {
		t.Fatal(err)
	}
	if d.Width() != DefaultWidth || d.Height() != DefaultHeight || d.FPS() != DefaultFPS {
		t.Errorf("defaults = %dx%d@%d", d.Width(), d.Height(), d.FPS())
	}
	if d.Len() != 1 || d.Active() != 0 {
		t.Errorf("Len=%d Active=%d, want one active frame", d.Len(), d.Active())
	}
	if d.Background() != White {
		t.Errorf("Background() = %v, want white", d.Background())
	}
	if c, _ := d.ActivePixmap().Pixel(0, 0); c != White {
		t.Errorf("blank frame = %v, want background", c)
	}
	if d.Palette().Len() != 12 {
		t.Errorf("default palette has %d colors, want 12", d.Palette().Len())
	}
	if d.ID() == [16]byte{} {
		t.Error("document has no ID")
	}
	if d.History().CanUndo() {
		t.Error("new document has history")
	}
}

func TestNewDocumentValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []DocumentOption
		want error
	}{
		{"zero width", []DocumentOption{WithSize(0, 10)}, ErrInvalidSize},
		{"too tall", []DocumentOption{WithSize(10, MaxCanvasSize+1)}, ErrInvalidSize},
		{"fps zero", []DocumentOption{WithFPS(0)}, ErrInvalidFPS},
		{"fps too high", []DocumentOption{WithFPS(MaxFPS + 1)}, ErrInvalidFPS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDocument(tt.opts...); !errors.Is(err, tt.want) {
				t.Errorf("NewDocument() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDocumentFrameOperations(t *testing.T) {
	d := newTestDoc(t)
	first := d.ActiveFrame()

	f1, err := d.AppendFrame()
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 || d.Active() != 1 || f1.Index() != 1 {
		t.Fatalf("after append: Len=%d Active=%d Index=%d", d.Len(), d.Active(), f1.Index())
	}

	f0, err := d.AddFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if f0.Index() != 0 || first.Index() != 1 || f1.Index() != 2 {
		t.Errorf("indices = %d %d %d, want 0 1 2", f0.Index(), first.Index(), f1.Index())
	}

	if _, err := d.AddFrame(4); !errors.Is(err, ErrFrameIndex) {
		t.Errorf("AddFrame(4) = %v, want ErrFrameIndex", err)
	}
	if err := d.SetActiveFrame(7); !errors.Is(err, ErrFrameIndex) {
		t.Errorf("SetActiveFrame(7) = %v, want ErrFrameIndex", err)
	}
	if _, err := d.Frame(-1); !errors.Is(err, ErrFrameIndex) {
		t.Errorf("Frame(-1) = %v, want ErrFrameIndex", err)
	}
}

func TestDocumentDuplicateFrame(t *testing.T) {
	d := newTestDoc(t)
	if err := d.Fill(0, 0, Red, 0); err != nil {
		t.Fatal(err)
	}
	if err := d.SetHoldCount(0, 3); err != nil {
		t.Fatal(err)
	}

	dup, err := d.DuplicateFrame(0)
	if err != nil {
		t.Fatal(err)
	}
	if dup.Index() != 1 || d.Active() != 1 {
		t.Errorf("duplicate at %d, active %d, want 1", dup.Index(), d.Active())
	}
	if dup.HoldCount() != 3 {
		t.Errorf("duplicate hold = %d, want 3", dup.HoldCount())
	}
	src, _ := d.Frame(0)
	if !dup.Pixmap().Equal(src.Pixmap()) {
		t.Fatal("duplicate pixels differ")
	}
	if dup.Pixmap() == src.Pixmap() {
		t.Fatal("duplicate shares the source pixmap")
	}

	if err := d.Fill(0, 0, Blue, 0); err != nil {
		t.Fatal(err)
	}
	if c, _ := src.Pixmap().Pixel(0, 0); c != Red {
		t.Errorf("editing the duplicate changed the source: %v", c)
	}
}

func TestDocumentDeleteLastFrame(t *testing.T) {
	d := newTestDoc(t)
	if err := d.Fill(0, 0, Green, 0); err != nil {
		t.Fatal(err)
	}
	before := d.ActivePixmap().Clone()
	undo := d.History().Len()

	if err := d.DeleteFrame(0); !errors.Is(err, ErrLastFrame) {
		t.Fatalf("DeleteFrame(0) = %v, want ErrLastFrame", err)
	}
	if d.Len() != 1 || !d.ActivePixmap().Equal(before) || d.History().Len() != undo {
		t.Error("failed delete changed the document")
	}
	if err := d.DeleteFrame(3); !errors.Is(err, ErrFrameIndex) {
		t.Errorf("DeleteFrame(3) = %v, want ErrFrameIndex", err)
	}
}

func TestDocumentDeleteFrame(t *testing.T) {
	d := newTestDoc(t)
	_, _ = d.AppendFrame()
	_, _ = d.AppendFrame()
	second, _ := d.Frame(1)

	if err := d.DeleteFrame(2); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 || d.Active() != 1 {
		t.Errorf("Len=%d Active=%d, want 2 and 1", d.Len(), d.Active())
	}
	if err := d.DeleteFrame(0); err != nil {
		t.Fatal(err)
	}
	if got, _ := d.Frame(0); got != second || second.Index() != 0 {
		t.Error("remaining frame was not renumbered")
	}
}

func TestDocumentReorderFrame(t *testing.T) {
	d := newTestDoc(t)
	frames := []*Frame{d.ActiveFrame()}
	for range 3 {
		f, _ := d.AppendFrame()
		frames = append(frames, f)
	}

	if err := d.ReorderFrame(0, 2); err != nil {
		t.Fatal(err)
	}
	want := []*Frame{frames[1], frames[2], frames[0], frames[3]}
	for i, f := range d.Frames() {
		if f != want[i] || f.Index() != i {
			t.Errorf("position %d holds frame %p (index %d)", i, f, f.Index())
		}
	}
	if d.Active() != 2 {
		t.Errorf("Active() = %d, want the moved frame at 2", d.Active())
	}

	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	for i, f := range d.Frames() {
		if f != frames[i] {
			t.Errorf("undo: position %d not restored", i)
		}
	}
	if err := d.ReorderFrame(0, 9); !errors.Is(err, ErrFrameIndex) {
		t.Errorf("ReorderFrame(0, 9) = %v, want ErrFrameIndex", err)
	}
}

func TestDocumentHoldAndDuration(t *testing.T) {
	d := newTestDoc(t, WithFPS(6))
	_, _ = d.AppendFrame()
	_, _ = d.AppendFrame()
	_, _ = d.AppendFrame()
	if got := d.Duration(); got != 666666666*time.Nanosecond {
		t.Errorf("Duration() = %v, want 666.666666ms", got)
	}

	if err := d.SetHoldCount(1, 0); !errors.Is(err, ErrInvalidHoldCount) {
		t.Errorf("SetHoldCount(1, 0) = %v, want ErrInvalidHoldCount", err)
	}
	if err := d.SetHoldCount(1, MaxHoldCount+1); !errors.Is(err, ErrInvalidHoldCount) {
		t.Errorf("SetHoldCount(1, max+1) = %v, want ErrInvalidHoldCount", err)
	}
	if err := d.SetFrameDuration(1, 500*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if f, _ := d.Frame(1); f.HoldCount() != 3 {
		t.Errorf("HoldCount = %d, want 3 (0.5s at 6fps)", f.HoldCount())
	}
	if d.TotalHoldCount() != 6 || d.Duration() != time.Second {
		t.Errorf("total=%d duration=%v, want 6 and 1s", d.TotalHoldCount(), d.Duration())
	}
}

func TestHoldForDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		fps  int
		want int
	}{
		{time.Second, 12, 12},
		{250 * time.Millisecond, 12, 3},
		{0, 12, 1},
		{10 * time.Millisecond, 12, 1},
		{time.Second / 8, 12, 2}, // 1.5 rounds up
	}
	for _, tt := range tests {
		if got := HoldForDuration(tt.d, tt.fps); got != tt.want {
			t.Errorf("HoldForDuration(%v, %d) = %d, want %d", tt.d, tt.fps, got, tt.want)
		}
	}
}

func TestDocumentSetFPS(t *testing.T) {
	d := newTestDoc(t)
	if err := d.SetFPS(24); err != nil || d.FPS() != 24 {
		t.Fatalf("SetFPS(24) = %v, FPS=%d", err, d.FPS())
	}
	for _, fps := range []int{0, -1, MaxFPS + 1} {
		if err := d.SetFPS(fps); !errors.Is(err, ErrInvalidFPS) {
			t.Errorf("SetFPS(%d) = %v, want ErrInvalidFPS", fps, err)
		}
	}
	if err := d.Undo(); err != nil || d.FPS() != 12 {
		t.Errorf("undo SetFPS: err=%v FPS=%d", err, d.FPS())
	}
}

func TestDocumentResizeCanvas(t *testing.T) {
	d := newTestDoc(t, WithSize(10, 10))
	if err := d.Fill(0, 0, Red, 0); err != nil {
		t.Fatal(err)
	}
	_, _ = d.AppendFrame()

	if err := d.ResizeCanvas(20, 5); err != nil {
		t.Fatal(err)
	}
	for i, f := range d.Frames() {
		pm := f.Pixmap()
		if pm.Width() != 20 || pm.Height() != 5 {
			t.Errorf("frame %d is %dx%d, want 20x5", i, pm.Width(), pm.Height())
		}
	}
	f0, _ := d.Frame(0)
	if c, _ := f0.Pixmap().Pixel(9, 4); c != Red {
		t.Errorf("kept pixel = %v, want red", c)
	}
	if c, _ := f0.Pixmap().Pixel(15, 0); c != White {
		t.Errorf("new area = %v, want background", c)
	}

	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if d.Width() != 10 || d.Height() != 10 {
		t.Fatalf("undo resize: %dx%d", d.Width(), d.Height())
	}
	if c, _ := f0.Pixmap().Pixel(5, 9); c != Red {
		t.Errorf("cropped pixel not restored: %v", c)
	}
	if err := d.ResizeCanvas(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("ResizeCanvas(0, 5) = %v, want ErrInvalidSize", err)
	}
}

func TestDocumentToolsRecordHistory(t *testing.T) {
	d := newTestDoc(t)
	tests := []struct {
		name string
		edit func() error
	}{
		{"stroke", func() error { return d.Stroke([]Point{Pt(2, 2), Pt(9, 5)}, 1, Black) }},
		{"erase", func() error { return d.Erase([]Point{Pt(3, 3)}, 2) }},
		{"fill", func() error { return d.Fill(15, 11, Yellow, 0) }},
		{"gradient", func() error {
			return d.GradientFill(nil, Gradient{From: Pt(0, 0), To: Pt(16, 0), A: Red, B: Blue})
		}},
		{"gradient at", func() error {
			return d.GradientFillAt(0, 0, 255, Gradient{Mode: GradientRadial, From: Pt(8, 6), To: Pt(0, 0), A: Cyan, B: Magenta})
		}},
		{"clear frame", d.ClearFrame},
	}
	for i, tt := range tests {
		if err := tt.edit(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := d.History().Len(); got != i+1 {
			t.Fatalf("%s: history length %d, want %d", tt.name, got, i+1)
		}
		if got := d.History().UndoLabel(); got != tt.name {
			t.Errorf("UndoLabel() = %q, want %q", got, tt.name)
		}
	}
}

func TestDocumentNoOpEditsAreNotRecorded(t *testing.T) {
	d := newTestDoc(t)
	if err := d.Fill(0, 0, White, 0); !errors.Is(err, ErrNoChange) {
		t.Errorf("Fill same color = %v, want ErrNoChange", err)
	}
	if err := d.Stroke([]Point{Pt(-30, -30)}, 2, Red); err != nil {
		t.Errorf("offscreen stroke = %v", err)
	}
	if err := d.Erase([]Point{Pt(4, 4)}, 2); err != nil {
		t.Errorf("erasing blank canvas = %v", err)
	}
	if err := d.ClearFrame(); err != nil {
		t.Errorf("clearing blank frame = %v", err)
	}
	if d.History().Len() != 0 {
		t.Errorf("history length = %d, want 0", d.History().Len())
	}
	if err := d.Fill(99, 0, Red, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Fill outside = %v, want ErrOutOfBounds", err)
	}
}

func TestDocumentImportImage(t *testing.T) {
	d := newTestDoc(t, WithSize(8, 4), WithBackground(Black))
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	if err := d.ImportImage(src); err != nil {
		t.Fatal(err)
	}
	pm := d.ActivePixmap()
	// A square scaled into 8x4 becomes 4x4, centered with 2px bars.
	if c, _ := pm.Pixel(0, 2); c != Black {
		t.Errorf("letterbox = %v, want background", c)
	}
	if c, _ := pm.Pixel(4, 2); c.R < 250 {
		t.Errorf("image area = %v, want white", c)
	}
	if err := d.ImportImage(image.NewNRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("ImportImage(empty) = %v, want ErrInvalidSize", err)
	}
	if err := d.Undo(); err != nil {
		t.Fatal(err)
	}
	if countColor(pm, Black) != 32 {
		t.Error("undo import did not restore the frame")
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		size   image.Point
		bounds image.Rectangle
		want   image.Rectangle
	}{
		{image.Pt(4, 4), image.Rect(0, 0, 8, 4), image.Rect(2, 0, 6, 4)},
		{image.Pt(8, 2), image.Rect(0, 0, 4, 4), image.Rect(0, 1, 4, 2)},
		{image.Pt(1000, 1), image.Rect(0, 0, 10, 10), image.Rect(0, 4, 10, 5)},
	}
	for _, tt := range tests {
		if got := fitRect(tt.size, tt.bounds); got != tt.want {
			t.Errorf("fitRect(%v, %v) = %v, want %v", tt.size, tt.bounds, got, tt.want)
		}
	}
}

func TestDocumentPaletteEdits(t *testing.T) {
	d := newTestDoc(t, WithPalette(Red, Green))
	if err := d.AddColor(Blue, "blue"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetColor(0, Yellow); err != nil {
		t.Fatal(err)
	}
	if err := d.RemoveColor(1); err != nil {
		t.Fatal(err)
	}
	if got := d.Palette().Colors(); len(got) != 2 || got[0] != Yellow || got[1] != Blue {
		t.Errorf("palette = %v, want [yellow blue]", got)
	}
	if err := d.RemoveColor(5); !errors.Is(err, ErrPaletteIndex) {
		t.Errorf("RemoveColor(5) = %v, want ErrPaletteIndex", err)
	}

	for range 3 {
		if err := d.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if got := d.Palette().Colors(); len(got) != 2 || got[0] != Red || got[1] != Green {
		t.Errorf("after undo palette = %v, want [red green]", got)
	}
}

func TestDocumentPaletteFull(t *testing.T) {
	colors := make([]Color, MaxPaletteSize)
	d := newTestDoc(t, WithPalette(colors...))
	if err := d.AddColor(Red, ""); !errors.Is(err, ErrPaletteIndex) {
		t.Errorf("AddColor on full palette = %v, want ErrPaletteIndex", err)
	}
}

func TestDocumentPaletteUsage(t *testing.T) {
	d := newTestDoc(t, WithPalette(Red, Blue))
	_ = d.Stroke([]Point{Pt(1, 1)}, 0, Red)
	_ = d.Fill(8, 8, Red, 0)
	e, _ := d.Palette().Entry(0)
	if e.Uses != 2 {
		t.Errorf("Uses = %d, want 2", e.Uses)
	}
	if i := d.Palette().IndexOf(Blue); i != 1 {
		t.Errorf("IndexOf(blue) = %d, want 1", i)
	}
}

func TestDocumentTitle(t *testing.T) {
	d := newTestDoc(t, WithTitle("flip"))
	if d.Title() != "flip" {
		t.Errorf("Title() = %q", d.Title())
	}
	d.SetTitle("book")
	if d.Title() != "book" || d.History().Len() != 0 {
		t.Error("SetTitle should rename without recording history")
	}
}
