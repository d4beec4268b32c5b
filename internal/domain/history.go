package domain

// HistoryBuffer is a fixed-capacity sliding window over the most recent
// measurements of one session. Pushing into a full buffer evicts the
// oldest entry; the window is a rolling statistic, not a log, so there is
// no rejection path. Not safe for concurrent use; the owning session
// serializes access.
type HistoryBuffer struct {
	entries []Measurement
	head    int
	size    int
}

func NewHistoryBuffer(capacity int) *HistoryBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &HistoryBuffer{entries: make([]Measurement, capacity)}
}

func (b *HistoryBuffer) Cap() int {
	return len(b.entries)
}

func (b *HistoryBuffer) Len() int {
	return b.size
}

// Push appends a measurement, evicting the oldest entry when full.
// Runs in constant time.
func (b *HistoryBuffer) Push(m Measurement) {
	b.entries[b.head] = m
	b.head = (b.head + 1) % len(b.entries)
	if b.size < len(b.entries) {
		b.size++
	}
}

// Window returns the buffered measurements oldest first. The returned
// slice is a copy; mutating it does not affect the buffer.
func (b *HistoryBuffer) Window() []Measurement {
	out := make([]Measurement, 0, b.size)
	start := b.head - b.size
	if start < 0 {
		start += len(b.entries)
	}
	for i := 0; i < b.size; i++ {
		out = append(out, b.entries[(start+i)%len(b.entries)])
	}
	return out
}
