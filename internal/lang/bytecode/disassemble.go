package bytecode

import (
	"fmt"
	"io"

	"github.com/glyphlang/glox/internal/lang/value"
)

// Disassemble writes a full textual listing of c to w, labeled name.
func (c *Chunk) Disassemble(w io.Writer, name string) {
	fmt.Fprintf(w, "=== %s ===\n", name)
	offset := 0
	for offset < len(c.Code) {
		offset = c.DisassembleInstruction(w, offset)
	}
}

// DisassembleInstruction writes one instruction at offset and returns the
// offset of the next instruction. Format: "NNNN LLLL OPNAME [operand] [value]"
// where LLLL is replaced by "   |" when unchanged from the previous offset.
func (c *Chunk) DisassembleInstruction(w io.Writer, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)

	line := c.GetLine(offset)
	if offset > 0 && c.GetLine(offset-1) == line {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", line)
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant, OpGetGlobal, OpDefineGlobal, OpSetGlobal:
		return c.shortConstantInstr(w, op, offset)
	case OpLongConstant, OpGetLongGlobal, OpDefineLongGlobal, OpSetLongGlobal:
		return c.longConstantInstr(w, op, offset)
	default:
		fmt.Fprintln(w, op.String())
		return offset + 1
	}
}

func (c *Chunk) shortConstantInstr(w io.Writer, op OpCode, offset int) int {
	id := int(c.Code[offset+1])
	fmt.Fprintf(w, "%-24s %4d %s\n", op.String(), id, displayConstant(c, id))
	return offset + 2
}

func (c *Chunk) longConstantInstr(w io.Writer, op OpCode, offset int) int {
	id := int(c.Code[offset+1])<<16 | int(c.Code[offset+2])<<8 | int(c.Code[offset+3])
	fmt.Fprintf(w, "%-24s %4d %s\n", op.String(), id, displayConstant(c, id))
	return offset + 4
}

func displayConstant(c *Chunk, id int) string {
	if id < 0 || id >= len(c.Constants) {
		return "<invalid>"
	}
	return value.Display(c.Constants[id])
}
