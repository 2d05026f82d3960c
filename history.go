package atap

// DefaultHistoryLimit is the default byte budget of a document's history.
const DefaultHistoryLimit = 256 << 20

// History is a document's undo/redo stack.
//
// Pixel edits are stored as region patches; structural edits keep the whole
// frames they add or remove. The retained byte size of every delta is tracked
// and, once the total exceeds the limit, the oldest undo deltas are dropped.
// The most recent delta is always kept.
//
// History is owned by a Document and is not safe for concurrent use.
type History struct {
	undo  []historyEntry
	redo  []historyEntry
	seq   uint64
	limit int
	bytes int
}

type historyEntry struct {
	seq   uint64
	delta delta
}

func newHistory(limit int) *History {
	return &History{limit: limit}
}

// Len returns the number of deltas that can be undone.
func (h *History) Len() int { return len(h.undo) }

// RedoLen returns the number of deltas that can be redone.
func (h *History) RedoLen() int { return len(h.redo) }

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Bytes returns the memory retained by all deltas.
func (h *History) Bytes() int { return h.bytes }

// Limit returns the byte budget; 0 means unlimited.
func (h *History) Limit() int { return h.limit }

// UndoLabel names the edit Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].delta.label()
}

// RedoLabel names the edit Redo would reapply, or "" when there is none.
func (h *History) RedoLabel() string {
	if len(h.redo) == 0 {
		return ""
	}
	return h.redo[len(h.redo)-1].delta.label()
}

// push records an already applied delta and discards the redo stack.
func (h *History) push(d delta) {
	for _, e := range h.redo {
		h.bytes -= e.delta.size()
	}
	h.redo = nil

	h.seq++
	h.undo = append(h.undo, historyEntry{seq: h.seq, delta: d})
	h.bytes += d.size()
	h.trim()
}

// trim drops the oldest undo deltas while over budget.
func (h *History) trim() {
	if h.limit <= 0 {
		return
	}
	dropped, freed := 0, 0
	for h.bytes > h.limit && len(h.undo)-dropped > 1 {
		n := h.undo[dropped].delta.size()
		h.bytes -= n
		freed += n
		dropped++
	}
	if dropped == 0 {
		return
	}
	h.undo = append(h.undo[:0:0], h.undo[dropped:]...)
	Logger().Warn("atap: history over budget, dropped oldest edits",
		"dropped", dropped, "freed", freed, "limit", h.limit)
}

func (h *History) popUndo() (historyEntry, bool) {
	if len(h.undo) == 0 {
		return historyEntry{}, false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return e, true
}

func (h *History) popRedo() (historyEntry, bool) {
	if len(h.redo) == 0 {
		return historyEntry{}, false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return e, true
}

func (h *History) reset() {
	h.undo = nil
	h.redo = nil
	h.bytes = 0
}
