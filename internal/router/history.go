package router

// History is the panel's location stack with back/forward support. The zero
// value is not usable; create one with NewHistory.
type History struct {
	entries []string
	index   int
}

// NewHistory starts a history at path.
func NewHistory(path string) *History {
	if path == "" {
		path = PathHome
	}
	return &History{entries: []string{path}}
}

// Current returns the current location path.
func (h *History) Current() string {
	return h.entries[h.index]
}

// Page resolves the current location.
func (h *History) Page() PageID {
	return Page(h.Current())
}

// Push navigates to path, discarding any forward entries. Pushing the
// current location is a no-op.
func (h *History) Push(path string) {
	if path == h.Current() {
		return
	}
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

// Replace swaps the current location for path without adding an entry.
func (h *History) Replace(path string) {
	h.entries[h.index] = path
}

// Back moves one entry back and reports whether it moved.
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves one entry forward and reports whether it moved.
func (h *History) Forward() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
