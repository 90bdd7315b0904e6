package preferences

// DefaultHistoryLimit is the number of snapshots kept for undo/redo.
const DefaultHistoryLimit = 50

// History is a bounded undo/redo stack of document snapshots. Once the first
// snapshot is pushed the cursor always points at an existing entry.
type History struct {
	entries []Document
	cursor  int
	limit   int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{cursor: -1, limit: limit}
}

// Push discards any redo entries past the cursor, appends a copy of doc and
// evicts the oldest snapshots beyond the limit.
func (h *History) Push(doc Document) {
	h.entries = append(h.entries[:h.cursor+1], doc.Clone())
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]Document(nil), h.entries[over:]...)
	}
	h.cursor = len(h.entries) - 1
}

func (h *History) Current() (Document, bool) {
	if h.cursor < 0 {
		return Document{}, false
	}
	return h.entries[h.cursor].Clone(), true
}

func (h *History) Undo() (Document, bool) {
	if !h.CanUndo() {
		return Document{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

func (h *History) Redo() (Document, bool) {
	if !h.CanRedo() {
		return Document{}, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor >= 0 && h.cursor < len(h.entries)-1 }

func (h *History) Len() int { return len(h.entries) }

func (h *History) Cursor() int { return h.cursor }

func (h *History) Limit() int { return h.limit }

// Reset drops every snapshot.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}
