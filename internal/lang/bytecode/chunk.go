// Package bytecode defines the Chunk container (code, constants, line map)
// and its opcode encoding, plus a disassembler used by `glox dis` and the
// VM's optional execution trace.
package bytecode

import (
	"fmt"

	"github.com/glyphlang/glox/internal/lang/value"
)

// Chunk is one compiled unit: a byte vector, an indexed constant pool, and a
// line-number side table.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	lines     LineMap
}

// Write appends one raw byte, attributing it to line.
func (c *Chunk) Write(b byte, line int) {
	c.lines.Add(len(c.Code), line)
	c.Code = append(c.Code, b)
}

// WriteOp appends an opcode byte.
func (c *Chunk) WriteOp(op OpCode, line int) {
	c.Write(byte(op), line)
}

// AddConstant appends v to the constant pool and returns its index.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// GetConstant returns the constant at id.
func (c *Chunk) GetConstant(id int) value.Value {
	return c.Constants[id]
}

// WriteConstant appends a value to the constant pool and emits the shortest
// instruction (short or long form) that addresses it with opShort/opLong,
// returning the emitted id so callers needing it again (e.g. to also emit a
// Define instruction for the same name) don't have to re-add the constant.
func (c *Chunk) WriteConstant(v value.Value, line int, opShort, opLong OpCode) int {
	id := c.AddConstant(v)
	c.emitConstantRef(id, line, opShort, opLong)
	return id
}

// EmitConstantRef emits a reference to an already-interned constant id using
// the appropriate short/long opcode.
func (c *Chunk) EmitConstantRef(id int, line int, opShort, opLong OpCode) {
	c.emitConstantRef(id, line, opShort, opLong)
}

func (c *Chunk) emitConstantRef(id int, line int, opShort, opLong OpCode) {
	switch {
	case id <= 0xff:
		c.WriteOp(opShort, line)
		c.Write(byte(id), line)
	case id < MaxConstants:
		c.WriteOp(opLong, line)
		c.Write(byte(id>>16), line)
		c.Write(byte(id>>8), line)
		c.Write(byte(id), line)
	default:
		panic(fmt.Sprintf("glox: internal error: constant pool exceeds %d entries", MaxConstants))
	}
}

// IsLongID reports whether id requires the long-form (u24) encoding.
func IsLongID(id int) bool {
	return id > 0xff
}

// GetLine returns the source line attributed to offset.
func (c *Chunk) GetLine(offset int) int {
	return c.lines.GetLine(offset)
}
