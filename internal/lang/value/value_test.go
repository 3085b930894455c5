package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Nil.Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.True(t, Number(0).Truthy())
	assert.True(t, String("").Truthy())
}

func TestEqual_DifferentVariantsAreNeverEqual(t *testing.T) {
	assert.False(t, Equal(Number(1), Bool(true)))
	assert.False(t, Equal(Nil, Bool(false)))
}

func TestEqual_StringsByByteContent(t *testing.T) {
	a := String("hello")
	b := String("hello")
	assert.True(t, Equal(a, b))
}

func TestEqual_NaN(t *testing.T) {
	nan := Number(math.NaN())
	assert.False(t, Equal(nan, nan))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "nil", Display(Nil))
	assert.Equal(t, "true", Display(Bool(true)))
	assert.Equal(t, "3", Display(Number(3)))
	assert.Equal(t, "3.5", Display(Number(3.5)))
	assert.Equal(t, "abc", Display(String("abc")))
}
