package bytecode

// LineMap is a run-length-compressed mapping from bytecode offset to source
// line: it records a new pair only when the line changes, optimized for
// append speed during compilation rather than lookup speed.
type LineMap struct {
	offsets []int
	lines   []int
}

// Add records that offset begins a new line, if line differs from the last
// recorded line.
func (m *LineMap) Add(offset, line int) {
	if len(m.lines) > 0 && m.lines[len(m.lines)-1] == line {
		return
	}
	m.offsets = append(m.offsets, offset)
	m.lines = append(m.lines, line)
}

// GetLine returns the line associated with the greatest recorded offset that
// is <= offset. Acceptable to be linear since it is only consulted on error
// paths and during disassembly.
func (m *LineMap) GetLine(offset int) int {
	line := 0
	for i, o := range m.offsets {
		if o > offset {
			break
		}
		line = m.lines[i]
	}
	return line
}
