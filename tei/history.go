package tei

// History is a linear, branch-discarding undo/redo log over whole-document
// snapshots. The log always holds at least one snapshot and the cursor is
// always a valid index; the snapshot at the cursor is exactly what the
// document buffer should display. History is owned by a single control
// flow and is not safe for concurrent use.
type History struct {
	snapshots []string
	cursor    int
}

// NewHistory seeds the log with the starting document text.
func NewHistory(initial string) *History {
	return &History{snapshots: []string{initial}}
}

// Record discards every snapshot after the cursor, appends next, and moves
// the cursor to it. Recording is unconditional: an identical string still
// creates a new entry, matching per-edit snapshot behavior. Callers that
// want coalescing simply skip the call.
func (h *History) Record(next string) {
	h.snapshots = append(h.snapshots[:h.cursor+1], next)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back and returns the snapshot there. At the lower
// boundary it is a no-op and reports false.
func (h *History) Undo() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo steps the cursor forward and returns the snapshot there. At the
// upper boundary it is a no-op and reports false.
func (h *History) Redo() (string, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return "", false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// Current returns the snapshot at the cursor.
func (h *History) Current() string {
	return h.snapshots[h.cursor]
}

// Len returns the number of snapshots in the log.
func (h *History) Len() int { return len(h.snapshots) }

// CanUndo reports whether Undo would change state.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would change state.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }
