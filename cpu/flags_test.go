package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoneFlagsHasAlwaysOnBits(t *testing.T) {
	p := NoneFlags()
	assert.True(t, p.Contains(FlagDecimal))
	assert.True(t, p.Contains(FlagUnused))
	assert.False(t, p.Contains(FlagCarry))
	assert.False(t, p.Contains(FlagNegative))
}

func TestInsertRemoveContains(t *testing.T) {
	var p FlagRegister
	assert.False(t, p.Contains(FlagCarry))
	p.Insert(FlagCarry)
	assert.True(t, p.Contains(FlagCarry))
	p.Remove(FlagCarry)
	assert.False(t, p.Contains(FlagCarry))
}

func TestClearRestoresAlwaysOnBits(t *testing.T) {
	var p FlagRegister
	p.Insert(FlagCarry | FlagNegative)
	p.Clear()
	assert.Equal(t, NoneFlags(), p)
}

func TestSetZN(t *testing.T) {
	var p FlagRegister
	p.SetZN(0x00)
	assert.True(t, p.Contains(FlagZero))
	assert.False(t, p.Contains(FlagNegative))

	p.SetZN(0x80)
	assert.False(t, p.Contains(FlagZero))
	assert.True(t, p.Contains(FlagNegative))

	p.SetZN(0x01)
	assert.False(t, p.Contains(FlagZero))
	assert.False(t, p.Contains(FlagNegative))
}

func TestSetCarry(t *testing.T) {
	var p FlagRegister
	p.SetCarry(0x00FF)
	assert.False(t, p.Contains(FlagCarry))
	p.SetCarry(0x0100)
	assert.True(t, p.Contains(FlagCarry))
}

func TestSetOverflowADCShape(t *testing.T) {
	var p FlagRegister
	// 0x50 + 0x50 = 0xA0: two positives summing to a negative result.
	p.SetOverflow(0x50, 0x50, 0xA0)
	assert.True(t, p.Contains(FlagOverflow))

	p.SetOverflow(0x10, 0x10, 0x20)
	assert.False(t, p.Contains(FlagOverflow))
}
