package content

// Buffer is a bounded, FIFO-evicting list of lines with an optional selection
// cursor. A cursor of -1 means nothing is selected.
type Buffer struct {
	lines    []string
	capacity int
	cursor   int
}

// New returns an empty buffer holding at most capacity lines. Values below 1
// are treated as 1.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{capacity: capacity, cursor: -1}
}

// Append adds line to the end of the buffer, evicting the oldest lines once
// the capacity is exceeded.
//
// When the selection sat on the newest line (or nothing was selected) it
// follows the tail. Otherwise it stays on the same logical line, shifting
// with evictions, and is clamped to the oldest retained line if its own line
// was evicted.
func (b *Buffer) Append(line string) {
	following := b.cursor < 0 || b.cursor == len(b.lines)-1
	b.lines = append(b.lines, line)
	evicted := 0
	if over := len(b.lines) - b.capacity; over > 0 {
		copy(b.lines, b.lines[over:])
		b.lines = b.lines[:b.capacity]
		evicted = over
	}
	if following {
		b.cursor = len(b.lines) - 1
		return
	}
	b.cursor -= evicted
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// Load appends every line in order.
func (b *Buffer) Load(lines []string) {
	for _, line := range lines {
		b.Append(line)
	}
}

// MoveSelection advances (forward) or retreats the cursor by one line without
// wrapping. With no selection, both directions select the newest line. It
// reports whether the cursor changed.
func (b *Buffer) MoveSelection(forward bool) bool {
	n := len(b.lines)
	if n == 0 {
		return false
	}
	if b.cursor < 0 {
		b.cursor = n - 1
		return true
	}
	if forward {
		return b.moveCursorBy(1)
	}
	return b.moveCursorBy(-1)
}

// PageSelection moves the cursor by delta lines, clamped to the buffer.
func (b *Buffer) PageSelection(delta int) bool {
	if len(b.lines) == 0 {
		return false
	}
	if b.cursor < 0 {
		b.cursor = len(b.lines) - 1
		if delta >= 0 {
			return true
		}
	}
	return b.moveCursorBy(delta)
}

// SelectFirst moves the cursor to the oldest retained line.
func (b *Buffer) SelectFirst() bool {
	if len(b.lines) == 0 {
		return false
	}
	old := b.cursor
	b.cursor = 0
	return old != b.cursor
}

// SelectLast moves the cursor to the newest line.
func (b *Buffer) SelectLast() bool {
	if len(b.lines) == 0 {
		return false
	}
	old := b.cursor
	b.cursor = len(b.lines) - 1
	return old != b.cursor
}

func (b *Buffer) moveCursorBy(delta int) bool {
	old := b.cursor
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= len(b.lines) {
		b.cursor = len(b.lines) - 1
	}
	return b.cursor != old
}

// Selected returns the cursor index and whether a line is selected.
func (b *Buffer) Selected() (int, bool) {
	if b.cursor < 0 || b.cursor >= len(b.lines) {
		return -1, false
	}
	return b.cursor, true
}

// Lines returns a copy of the retained lines, oldest first.
func (b *Buffer) Lines() []string {
	dup := make([]string, len(b.lines))
	copy(dup, b.lines)
	return dup
}

// Line returns the line at index i.
func (b *Buffer) Line(i int) string {
	return b.lines[i]
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Cap returns the maximum number of retained lines.
func (b *Buffer) Cap() int {
	return b.capacity
}
