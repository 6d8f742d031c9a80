package registry

// History is a bounded FIFO log of switches. It has no storage of its own;
// the entries live in Document.History.
type History struct {
	entries []HistoryEntry
	limit   int
}

// NewHistory wraps existing entries. A non-positive limit means DefaultHistoryLimit.
// Entries beyond the limit are evicted oldest first.
func NewHistory(entries []HistoryEntry, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	h := &History{
		entries: append([]HistoryEntry{}, entries...),
		limit:   limit,
	}
	h.evict()
	return h
}

// Append adds entry at the tail and evicts from the head down to the limit
func (h *History) Append(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
	h.evict()
}

// Recent returns up to limit entries, newest first. A non-positive limit returns all.
func (h *History) Recent(limit int) []HistoryEntry {
	n := len(h.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]HistoryEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Entries returns the log oldest first
func (h *History) Entries() []HistoryEntry {
	return append([]HistoryEntry{}, h.entries...)
}

// Len returns the number of entries held
func (h *History) Len() int { return len(h.entries) }

func (h *History) evict() {
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]HistoryEntry{}, h.entries[over:]...)
	}
}
