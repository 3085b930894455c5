package vm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAndCapture(t *testing.T, src string) (stdout string, err error) {
	t.Helper()
	var buf bytes.Buffer
	v := New()
	v.Stdout = &buf
	err = v.Interpret(src)
	return buf.String(), err
}

func TestVM_EndToEndScenarios(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		expected    string
		expectError bool
		errorMsg    string
	}{
		{name: "arithmetic precedence", src: `print 1 + 2 * 3;`, expected: "7\n"},
		{name: "string concatenation", src: `print "a" + "b" + "c";`, expected: "abc\n"},
		{name: "global assignment", src: `var x = 10; x = x + 5; print x;`, expected: "15\n"},
		{name: "truthiness of not", src: `print !nil; print !true; print !0;`, expected: "true\nfalse\nfalse\n"},
		{name: "equality across variants", src: `print "x" == "x"; print 1 == true;`, expected: "true\nfalse\n"},
		{
			name:        "undefined variable",
			src:         `print y;`,
			expectError: true,
			errorMsg:    "Undefined variable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runAndCapture(t, tt.src)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestVM_DivisionByZeroFollowsIEEE(t *testing.T) {
	out, err := runAndCapture(t, `print 1 / 0;`)
	require.NoError(t, err)
	assert.Equal(t, "+Inf\n", out)
}

func TestVM_TypeErrorOnArithmeticWithString(t *testing.T) {
	_, err := runAndCapture(t, `print 1 - "x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Both operands must be numbers")
}

func TestVM_TypeErrorOnComparisonIncludesExactSpecWording(t *testing.T) {
	_, err := runAndCapture(t, `print 1 > "x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Both operands must be numbers")
}

func TestVM_NegateTypeErrorNamesOperandType(t *testing.T) {
	_, err := runAndCapture(t, `print -"x";`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got string")
}

func TestVM_GlobalsPersistAcrossInterpretCalls(t *testing.T) {
	v := New()
	var buf bytes.Buffer
	v.Stdout = &buf

	require.NoError(t, v.Interpret(`var counter = 1;`))
	require.NoError(t, v.Interpret(`print counter;`))
	assert.Equal(t, "1\n", buf.String())
}

func TestVM_StackResetsBetweenInterpretCallsAfterRuntimeError(t *testing.T) {
	v := New()
	var buf bytes.Buffer
	v.Stdout = &buf

	err := v.Interpret(`print oops;`)
	require.Error(t, err)

	require.NoError(t, v.Interpret(`print 1;`))
	assert.Equal(t, "1\n", buf.String())
}

func TestVM_RemainderUsesDividendSign(t *testing.T) {
	out, err := runAndCapture(t, `print -5 % 3;`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "-2"))
}
