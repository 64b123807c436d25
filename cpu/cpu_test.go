package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nescore/mem"
)

func newTestCpu() *Cpu {
	return &Cpu{Bus: &mem.Bus{}, Stack: 0xFF, Flags: NoneFlags()}
}

func TestLoadProgram(t *testing.T) {
	program := "A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18 6D 01 00 88 D0 FA 8D 02 00 EA EA EA" // 28 bytes

	c := newTestCpu()
	c.LoadProgram([]byte(program), 0x8000)

	assert.Equal(t, byte(0xA2), c.Bus.Read(0x8000))
	assert.Equal(t, byte(0x0A), c.Bus.Read(0x8001))
	assert.Equal(t, byte(0x8E), c.Bus.Read(0x8002))
	assert.Equal(t, byte(0xEA), c.Bus.Read(0x801B))

	op, ok := Decode(c.Bus.Read(0x8000))
	require.True(t, ok)
	assert.Equal(t, "LDX", op.Name)
}

// TestMultiplyProgram runs a hand-written 10*3 multiplication loop end to
// end and checks both the final register state and what it left in RAM.
func TestMultiplyProgram(t *testing.T) {
	program := "A2 0A 8E 00 00 A2 03 8E 01 00 AC 00 00 A9 00 18 6D 01 00 88 D0 FA 8D 02 00 EA EA EA"

	c := newTestCpu()
	offset := uint16(0x8000)
	c.LoadProgram([]byte(program), offset)
	c.Bus.Load(0xFFFC, byte(offset))
	c.Bus.Load(0xFFFD, byte(offset>>8))
	c.Reset()

	require.Equal(t, offset, c.ProgramCounter)

	for range 200 {
		op, ok := Decode(c.Bus.Read(c.ProgramCounter))
		require.True(t, ok)
		if op.Name == "BRK" {
			break
		}
		_, err := c.Step()
		require.NoError(t, err)
	}

	assert.Equal(t, byte(30), c.Accumulator)
	assert.Equal(t, byte(3), c.X)
	assert.Equal(t, byte(0), c.Y)
	assert.Equal(t, byte(10), c.Bus.Read(0x0000))
	assert.Equal(t, byte(3), c.Bus.Read(0x0001))
	assert.Equal(t, byte(30), c.Bus.Read(0x0002))
}

func TestImmediateOperandIsLiteralByte(t *testing.T) {
	c := newTestCpu()
	c.LoadProgram([]byte("A9 2A"), 0x8000) // LDA #$2A
	c.ProgramCounter = 0x8000

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x2A), c.Accumulator)
}

func TestZeroPageXWrapsWithinPageZero(t *testing.T) {
	c := newTestCpu()
	c.X = 0xFF
	c.Bus.Load(0x007F, 0x55) // 0x80 + 0xFF wraps to 0x7F
	c.LoadProgram([]byte("B5 80"), 0x8000) // LDA $80,X
	c.ProgramCounter = 0x8000

	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x55), c.Accumulator)
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c := newTestCpu()
	c.X = 0xFF
	c.Bus.Load(0x8100, 0x7B) // $8001 + $FF = $8100, crosses the page
	c.LoadProgram([]byte("BD 01 80"), 0x8000) // LDA $8001,X

	c.ProgramCounter = 0x8000
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7B), c.Accumulator)
	assert.Equal(t, uint32(5), cycles) // base 4 + 1 for the page cross
}

func TestAbsoluteXNoPageCrossStaysBase(t *testing.T) {
	c := newTestCpu()
	c.X = 0x01
	c.Bus.Load(0x8002, 0x42)
	c.LoadProgram([]byte("BD 01 80"), 0x8000)

	c.ProgramCounter = 0x8000
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), cycles)
}

func TestIndirectXIgnoresIndexRegisterForPageCross(t *testing.T) {
	c := newTestCpu()
	c.X = 0x04
	c.Bus.Load(0x0024, 0x00) // ($20+X) low byte
	c.Bus.Load(0x0025, 0x90) // ($20+X) high byte -> target $9000
	c.Bus.Load(0x9000, 0x11)
	c.LoadProgram([]byte("A1 20"), 0x8000) // LDA ($20,X)

	c.ProgramCounter = 0x8000
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), c.Accumulator)
	assert.Equal(t, uint32(6), cycles) // base only; IndirectX never adds a page-cross cycle
}

func TestIndirectYPageCross(t *testing.T) {
	c := newTestCpu()
	c.Y = 0xFF
	c.Bus.Load(0x0020, 0x01) // pointer low
	c.Bus.Load(0x0021, 0x80) // pointer high -> base $8001
	c.Bus.Load(0x8100, 0x99) // $8001+$FF crosses into $8100
	c.LoadProgram([]byte("B1 20"), 0x9000) // LDA ($20),Y

	c.ProgramCounter = 0x9000
	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), c.Accumulator)
	assert.Equal(t, uint32(6), cycles) // base 5 + 1
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c := newTestCpu()
	c.Bus.Load(0x02FF, 0x80) // low byte of target
	c.Bus.Load(0x0200, 0x90) // buggy high byte: wraps to start of same page, not $0300
	c.Bus.Load(0x0300, 0xAB) // what a correct implementation would have used instead
	c.LoadProgram([]byte("6C FF 02"), 0x8000) // JMP ($02FF)

	c.ProgramCounter = 0x8000
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9080), c.ProgramCounter)
}

func TestJMPIndirectNoWrap(t *testing.T) {
	c := newTestCpu()
	c.Bus.Load(0x0300, 0x34)
	c.Bus.Load(0x0301, 0x12)
	c.LoadProgram([]byte("6C 00 03"), 0x8000)

	c.ProgramCounter = 0x8000
	_, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), c.ProgramCounter)
}

func TestJSRAndRTSRoundTrip(t *testing.T) {
	c := newTestCpu()
	c.LoadProgram([]byte("20 00 90"), 0x8000) // JSR $9000
	c.LoadProgram([]byte("60"), 0x9000)       // RTS
	c.ProgramCounter = 0x8000

	_, err := c.Step() // JSR
	require.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.ProgramCounter)

	_, err = c.Step() // RTS
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8003), c.ProgramCounter)
}

func TestBRKPushesReturnAddressAndSetsInterruptDisable(t *testing.T) {
	c := newTestCpu()
	c.Bus.Load(0xFFFE, 0x00)
	c.Bus.Load(0xFFFF, 0x90)
	c.LoadProgram([]byte("00"), 0x8000) // BRK
	c.ProgramCounter = 0x8000

	_, err := c.Step()
	require.NoError(t, err)

	assert.True(t, c.Flags.Contains(FlagInterrupt))
	assert.Equal(t, uint16(0x9000), c.ProgramCounter)

	pushedFlags := c.Read(0x0100 | uint16(c.Stack+1))
	assert.NotZero(t, pushedFlags&byte(FlagBreak))

	lo := c.Read(0x0100 | uint16(c.Stack+2))
	hi := c.Read(0x0100 | uint16(c.Stack+3))
	returnAddr := uint16(hi)<<8 | uint16(lo)
	assert.Equal(t, uint16(0x8002), returnAddr)
}

func TestNMIAndIRQ(t *testing.T) {
	c := newTestCpu()
	c.Bus.Load(0xFFFA, 0x00)
	c.Bus.Load(0xFFFB, 0x40)
	c.ProgramCounter = 0x1234

	cycles := c.NMI()
	assert.Equal(t, uint32(7), cycles)
	assert.Equal(t, uint16(0x4000), c.ProgramCounter)
	assert.True(t, c.Flags.Contains(FlagInterrupt))

	c.Bus.Load(0xFFFE, 0x00)
	c.Bus.Load(0xFFFF, 0x50)
	// interrupt disable is now set, so IRQ must be ignored
	cycles = c.IRQ()
	assert.Equal(t, uint32(0), cycles)
	assert.Equal(t, uint16(0x4000), c.ProgramCounter)

	c.Flags.Remove(FlagInterrupt)
	cycles = c.IRQ()
	assert.Equal(t, uint32(7), cycles)
	assert.Equal(t, uint16(0x5000), c.ProgramCounter)
}

func TestADCCarryChain(t *testing.T) {
	c := newTestCpu()
	c.Accumulator = 0xFF
	c.M = 0x02
	adc(c)
	assert.Equal(t, byte(0x01), c.Accumulator)
	assert.True(t, c.Flags.Contains(FlagCarry))

	c.Accumulator = 0x00
	c.M = 0x00
	adc(c) // carry from before is consumed
	assert.Equal(t, byte(0x01), c.Accumulator)
	assert.False(t, c.Flags.Contains(FlagCarry))
}

func TestSBCOverflow(t *testing.T) {
	c := newTestCpu()
	c.Flags.Insert(FlagCarry) // no borrow going in
	c.Accumulator = 0x80      // -128
	c.M = 0x01                // subtracting a positive from a very negative number overflows
	sbc(c)
	assert.True(t, c.Flags.Contains(FlagOverflow))
	assert.Equal(t, byte(0x7F), c.Accumulator)
}

func TestTXSDoesNotAffectFlags(t *testing.T) {
	c := newTestCpu()
	c.X = 0x00
	c.Flags.Insert(FlagZero)
	txs(c)
	assert.Equal(t, byte(0x00), c.Stack)
	assert.True(t, c.Flags.Contains(FlagZero)) // untouched, even though X is zero
}

func TestCLDIsANoOp(t *testing.T) {
	c := newTestCpu()
	c.Flags.Insert(FlagDecimal)
	cld(c)
	assert.True(t, c.Flags.Contains(FlagDecimal))
}

func TestBranchTakenAndPageCross(t *testing.T) {
	c := newTestCpu()
	c.Flags.Insert(FlagZero)
	// after the opcode and operand are fetched, PC sits at $80FF; +1 lands
	// on $8100, crossing from page $80 into page $81.
	c.LoadProgram([]byte("F0 01"), 0x80FD) // BEQ +1
	c.ProgramCounter = 0x80FD

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), cycles) // base 2 + 1 taken + 1 page cross
	assert.Equal(t, uint16(0x8100), c.ProgramCounter)
}

func TestBranchNotTakenCostsBaseOnly(t *testing.T) {
	c := newTestCpu()
	c.LoadProgram([]byte("F0 7F"), 0x8000) // BEQ, but Z is clear
	c.ProgramCounter = 0x8000

	cycles, err := c.Step()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), cycles)
	assert.Equal(t, uint16(0x8002), c.ProgramCounter)
}

func TestIllegalOpcodeReportsAndContinues(t *testing.T) {
	c := newTestCpu()
	c.LoadProgram([]byte("02"), 0x8000) // not a real 6502 opcode
	c.ProgramCounter = 0x8000

	cycles, err := c.Step()
	require.Error(t, err)
	assert.Equal(t, uint32(2), cycles)
	assert.Equal(t, uint16(0x8001), c.ProgramCounter)
}

func TestRunCyclesStopsAtBudget(t *testing.T) {
	c := newTestCpu()
	c.LoadProgram([]byte("EA EA EA EA"), 0x8000) // four NOPs, 2 cycles each
	c.ProgramCounter = 0x8000

	remaining := int32(5)
	c.RunCycles(&remaining)

	assert.Equal(t, uint16(0x8003), c.ProgramCounter) // 3 NOPs run; the third overruns the budget
	assert.LessOrEqual(t, remaining, int32(0))
}
