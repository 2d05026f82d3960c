package atap

import (
	"errors"
	"testing"
)

func TestUndoRestoresOriginal(t *testing.T) {
	d := newTestDoc(t)
	original := d.ActivePixmap().Clone()
	colors := []Color{Red, Green, Blue, Black, Magenta}

	for i, c := range colors {
		y := float64(i * 2)
		if err := d.Stroke([]Point{Pt(0, y), Pt(15, y+1)}, 1, c); err != nil {
			t.Fatal(err)
		}
	}
	if d.ActivePixmap().Equal(original) {
		t.Fatal("strokes left the frame unchanged")
	}
	for range colors {
		if err := d.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if !d.ActivePixmap().Equal(original) {
		t.Error("undoing every stroke did not restore the original frame")
	}
	if err := d.Undo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Undo() on empty history = %v, want ErrEmptyHistory", err)
	}
}

func TestRedoReappliesEdits(t *testing.T) {
	d := newTestDoc(t)
	_ = d.Stroke([]Point{Pt(1, 1), Pt(10, 8)}, 2, Red)
	_ = d.Fill(15, 0, Blue, 0)
	want := d.ActivePixmap().Clone()

	_ = d.Undo()
	_ = d.Undo()
	if !d.History().CanRedo() || d.History().RedoLen() != 2 {
		t.Fatalf("RedoLen() = %d, want 2", d.History().RedoLen())
	}
	if got := d.History().RedoLabel(); got != "stroke" {
		t.Errorf("RedoLabel() = %q, want stroke", got)
	}
	_ = d.Redo()
	_ = d.Redo()
	if !d.ActivePixmap().Equal(want) {
		t.Error("redo did not reproduce the edited frame")
	}
	if err := d.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Redo() = %v, want ErrEmptyHistory", err)
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	d := newTestDoc(t)
	_ = d.Fill(0, 0, Red, 0)
	_ = d.Undo()
	if !d.History().CanRedo() {
		t.Fatal("undo left nothing to redo")
	}
	_ = d.Fill(0, 0, Green, 0)
	if d.History().CanRedo() {
		t.Error("a new edit must discard the redo stack")
	}
	if err := d.Redo(); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("Redo() = %v, want ErrEmptyHistory", err)
	}
}

func TestUndoFrameStructure(t *testing.T) {
	d := newTestDoc(t)
	first := d.ActiveFrame()
	_ = d.Fill(0, 0, Red, 0)
	dup, _ := d.DuplicateFrame(0)
	_ = d.Fill(0, 0, Blue, 0)
	_ = d.DeleteFrame(0)

	if d.Len() != 1 || d.ActiveFrame() != dup {
		t.Fatalf("Len=%d, want only the duplicate left", d.Len())
	}

	_ = d.Undo() // delete
	if d.Len() != 2 || d.Active() != 0 {
		t.Fatalf("undo delete: Len=%d Active=%d", d.Len(), d.Active())
	}
	if f, _ := d.Frame(0); f != first {
		t.Error("undo delete did not reinsert the original frame")
	}
	_ = d.Undo() // fill on duplicate
	if d.Active() != 1 {
		t.Errorf("undo focuses the edited frame, Active() = %d", d.Active())
	}
	if c, _ := dup.Pixmap().Pixel(0, 0); c != Red {
		t.Errorf("duplicate pixel = %v, want red", c)
	}
	_ = d.Undo() // duplicate
	_ = d.Undo() // fill
	if d.Len() != 1 || countColor(first.Pixmap(), White) != 16*12 {
		t.Error("full undo did not restore the blank document")
	}
	if d.History().Len() != 0 || d.History().RedoLen() != 4 {
		t.Errorf("Len=%d RedoLen=%d, want 0 and 4", d.History().Len(), d.History().RedoLen())
	}
}

func TestUndoHoldCount(t *testing.T) {
	d := newTestDoc(t)
	_ = d.SetHoldCount(0, 4)
	if got := d.History().UndoLabel(); got != "set frame duration" {
		t.Errorf("UndoLabel() = %q", got)
	}
	_ = d.Undo()
	if d.ActiveFrame().HoldCount() != 1 {
		t.Errorf("HoldCount() = %d, want 1", d.ActiveFrame().HoldCount())
	}
	_ = d.SetHoldCount(0, 1)
	if d.History().Len() != 0 {
		t.Error("setting the same hold count was recorded")
	}
}

func TestHistoryBudget(t *testing.T) {
	// One 16x12 full-frame fill retains 2 * 768 bytes.
	d := newTestDoc(t, WithHistoryLimit(4000))
	colors := []Color{Red, Green, Blue, Yellow}
	for _, c := range colors {
		if err := d.Fill(0, 0, c, 0); err != nil {
			t.Fatal(err)
		}
	}
	h := d.History()
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2 edits within budget", h.Len())
	}
	if h.Bytes() > h.Limit() {
		t.Errorf("Bytes() = %d over limit %d", h.Bytes(), h.Limit())
	}
	_ = d.Undo()
	_ = d.Undo()
	if c, _ := d.ActivePixmap().Pixel(0, 0); c != Green {
		t.Errorf("oldest reachable state = %v, want green", c)
	}
}

func TestHistoryKeepsNewestEdit(t *testing.T) {
	d := newTestDoc(t, WithHistoryLimit(1))
	_ = d.Fill(0, 0, Red, 0)
	_ = d.Fill(0, 0, Blue, 0)
	if d.History().Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.History().Len())
	}
	_ = d.Undo()
	if c, _ := d.ActivePixmap().Pixel(3, 3); c != Red {
		t.Errorf("undo = %v, want red", c)
	}
}

func TestHistoryUnlimited(t *testing.T) {
	d := newTestDoc(t, WithHistoryLimit(0))
	for i := range 20 {
		_ = d.Fill(0, 0, HSL(float64(i*17), 1, 0.5), 0)
	}
	if d.History().Len() != 20 {
		t.Errorf("Len() = %d, want 20", d.History().Len())
	}
}

func TestHistoryByteAccounting(t *testing.T) {
	d := newTestDoc(t)
	_ = d.Fill(0, 0, Red, 0)
	one := d.History().Bytes()
	if one != 2*16*12*4 {
		t.Errorf("Bytes() = %d, want %d", one, 2*16*12*4)
	}
	_ = d.Undo()
	if d.History().Bytes() != one {
		t.Error("undo should keep the delta for redo")
	}
	_ = d.Fill(0, 0, Blue, 0)
	if d.History().Bytes() != one {
		t.Errorf("Bytes() = %d after dropping redo, want %d", d.History().Bytes(), one)
	}
}
