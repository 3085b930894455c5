package bytecode

import (
	"bytes"
	"testing"

	"github.com/glyphlang/glox/internal/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConstant_ShortFormBoundary(t *testing.T) {
	c := &Chunk{}
	for i := 0; i < 255; i++ {
		c.AddConstant(value.Number(float64(i)))
	}
	id := c.WriteConstant(value.Number(255), 1, OpConstant, OpLongConstant)
	require.Equal(t, 255, id)
	assert.Equal(t, OpConstant, OpCode(c.Code[0]))
	assert.Equal(t, byte(255), c.Code[1])
}

func TestWriteConstant_LongFormAt256(t *testing.T) {
	c := &Chunk{}
	for i := 0; i < 256; i++ {
		c.AddConstant(value.Number(float64(i)))
	}
	id := c.WriteConstant(value.Number(256), 1, OpConstant, OpLongConstant)
	require.Equal(t, 256, id)
	assert.Equal(t, OpLongConstant, OpCode(c.Code[0]))
	got := int(c.Code[1])<<16 | int(c.Code[2])<<8 | int(c.Code[3])
	assert.Equal(t, 256, got)
}

func TestLineMapMonotonic(t *testing.T) {
	c := &Chunk{}
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpTrue, 1)
	c.WriteOp(OpPop, 2)
	assert.Equal(t, 1, c.GetLine(0))
	assert.Equal(t, 1, c.GetLine(1))
	assert.Equal(t, 2, c.GetLine(2))
}

func TestDisassembleInstruction_RepeatsLineAsBar(t *testing.T) {
	c := &Chunk{}
	c.WriteConstant(value.Number(1), 5, OpConstant, OpLongConstant)
	c.WriteOp(OpReturn, 5)
	var buf bytes.Buffer
	c.Disassemble(&buf, "test")
	out := buf.String()
	assert.Contains(t, out, "0000    5 OP_CONSTANT")
	assert.Contains(t, out, "0002    | OP_RETURN")
}
