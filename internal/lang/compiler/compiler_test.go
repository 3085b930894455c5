package compiler

import (
	"bytes"
	"testing"

	"github.com/glyphlang/glox/internal/lang/bytecode"
	"github.com/glyphlang/glox/internal/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileOK(t *testing.T, src string) *bytecode.Chunk {
	t.Helper()
	var buf bytes.Buffer
	old := ErrOutput
	ErrOutput = &buf
	defer func() { ErrOutput = old }()

	chunk, err := New().Compile(src)
	require.NoError(t, err, "stderr: %s", buf.String())
	require.NotNil(t, chunk)
	return chunk
}

func TestCompile_SimpleArithmeticEndsInReturn(t *testing.T) {
	chunk := compileOK(t, "print 1 + 2 * 3;")
	require.NotEmpty(t, chunk.Code)
	assert.Equal(t, bytecode.OpReturn, bytecode.OpCode(chunk.Code[len(chunk.Code)-1]))
}

func TestCompile_VarDeclarationDefaultsToNil(t *testing.T) {
	chunk := compileOK(t, "var x;")
	assert.Equal(t, bytecode.OpNil, bytecode.OpCode(chunk.Code[0]))
	assert.Equal(t, bytecode.OpDefineGlobal, bytecode.OpCode(chunk.Code[1]))
}

func TestCompile_EmptyProgramIsJustReturn(t *testing.T) {
	chunk := compileOK(t, "")
	assert.Equal(t, []byte{byte(bytecode.OpReturn)}, chunk.Code)
}

func TestCompile_GreaterEqualEncodedAsLessNot(t *testing.T) {
	chunk := compileOK(t, "print 1 >= 2;")
	assert.Contains(t, opNames(chunk), []bytecode.OpCode{bytecode.OpLess, bytecode.OpNot})
}

func opNames(chunk *bytecode.Chunk) [][]bytecode.OpCode {
	// Helper used only to check adjacency of Less,Not / Greater,Not pairs.
	var pairs [][]bytecode.OpCode
	for i := 0; i+1 < len(chunk.Code); i++ {
		op := bytecode.OpCode(chunk.Code[i])
		switch op {
		case bytecode.OpLess, bytecode.OpGreater, bytecode.OpEqual:
			if bytecode.OpCode(chunk.Code[i+1]) == bytecode.OpNot {
				pairs = append(pairs, []bytecode.OpCode{op, bytecode.OpNot})
			}
		}
	}
	return pairs
}

func TestCompile_StringEscapes(t *testing.T) {
	chunk := compileOK(t, `print "a\nb";`)
	require.Len(t, chunk.Constants, 1)
	assert.Equal(t, "a\nb", value.Display(chunk.Constants[0]))
}

func TestCompile_UnterminatedStringReportsError(t *testing.T) {
	var buf bytes.Buffer
	old := ErrOutput
	ErrOutput = &buf
	defer func() { ErrOutput = old }()

	_, err := New().Compile(`print "oops;`)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Unterminated string")
}

func TestCompile_UndefinedEscapeIsError(t *testing.T) {
	var buf bytes.Buffer
	old := ErrOutput
	ErrOutput = &buf
	defer func() { ErrOutput = old }()

	_, err := New().Compile(`print "\q";`)
	require.Error(t, err)
}

func TestCompile_ConstantBoundaryUsesLongForm(t *testing.T) {
	var src bytes.Buffer
	for i := 0; i < 300; i++ {
		src.WriteString("print 1;\n")
	}
	chunk := compileOK(t, src.String())
	foundLong := false
	for _, b := range chunk.Code {
		if bytecode.OpCode(b) == bytecode.OpLongConstant {
			foundLong = true
		}
	}
	assert.True(t, foundLong)
}

func TestCompile_InvalidAssignmentTarget(t *testing.T) {
	var buf bytes.Buffer
	old := ErrOutput
	ErrOutput = &buf
	defer func() { ErrOutput = old }()

	_, err := New().Compile(`1 + 2 = 3;`)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Invalid assignment target")
}
