// Package cpu implements the MOS Technology 6502 microprocessor, as used in
// the Ricoh 2A03 at the heart of the NES.

package cpu

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"nescore/mask"
	"nescore/mem"
	"nescore/ppu"
)

// The Cpu has no memory of its own (aside from a handful of small
// registers). Instead, it interfaces with a Bus that provides memory.
type Cpu struct {
	Bus *mem.Bus

	// https://problemkaputt.de/everynes.htm#cpuregistersandflags
	// https://www.nesdev.org/wiki/CPU_ALL#CPU_2
	// https://www.nesdev.org/wiki/Status_flags#Flags
	Flags FlagRegister

	Accumulator byte // the Accumulator; a byte value for immediate use, similar to a local variable
	X           byte
	Y           byte

	// Stack instructions (PHA, PLA, PHP, PLP, JSR, RTS, BRK, RTI) always
	// access the 01 page (0x0100-0x01ff). The Cpu stores the low byte here.
	Stack byte

	// The ProgramCounter is a 2-byte (word) memory address that increments
	// (almost) continuously. The byte located at this address should
	// provide the CPU with an Opcode that specifies the next instruction
	// to execute.
	ProgramCounter uint16

	M           byte   // the resolved operand, valid only during the current instruction
	AbsAddress  uint16 // effective address computed by decode; for Immediate/Relative the literal operand lives in its low byte instead
	PageCrossed bool   // set by decode when an indexed addressing mode crosses a page

	// TotalCycles accumulates every cycle this Cpu has ever spent; it is
	// never consulted by Step itself, only by callers wanting to observe
	// how much work has happened.
	TotalCycles uint64

	// Logger receives DecodeFailure reports. Defaults to log.Default() when
	// left nil, so a zero-value Cpu is still usable.
	Logger Reporter
}

// Reporter is the narrow logging capability the Cpu needs for reporting an
// illegal opcode. *log.Logger satisfies this.
type Reporter interface {
	Printf(format string, args ...any)
}

func (c *Cpu) logger() Reporter {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// DecodeError is returned by Step when the fetched byte has no entry in the
// opcode table.
type DecodeError struct {
	Opcode byte
	Addr   uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode $%02X at $%04X", e.Opcode, e.Addr)
}

// New constructs a Cpu wired to a fresh Bus carrying the given PRG-ROM
// banks. The register file starts at its power-up values: PC=0 (until
// Reset loads the real vector), A=X=Y=0, S=0xFF, P with only the two
// always-on bits set.
func New(prgLower, prgUpper [0x4000]byte, ppuCap ppu.StatusProvider) *Cpu {
	return &Cpu{
		Bus:   &mem.Bus{PRGLower: prgLower, PRGUpper: prgUpper, PPU: ppuCap},
		Stack: 0xFF,
		Flags: NoneFlags(),
	}
}

// Read reads one byte from the given addr via the Bus.
func (c *Cpu) Read(addr uint16) byte { return c.Bus.Read(addr) }

// Write passes data to the Bus, which actually performs the write.
func (c *Cpu) Write(addr uint16, data byte) { c.Bus.Write(addr, data) }

// LoadProgram parses a whitespace-separated string of hex byte values and
// pokes them directly into memory starting at addr, bypassing normal Bus
// write semantics. It exists for tests and the debugger, not for anything a
// running program would do itself.
func (c *Cpu) LoadProgram(program []byte, addr uint16) {
	for i, s := range strings.Fields(string(program)) {
		b, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			panic(err)
		}
		c.Bus.Load(addr+uint16(i), byte(b))
	}
}

// readPC reads the byte at the ProgramCounter and advances it by one.
func (c *Cpu) readPC() byte {
	b := c.Read(c.ProgramCounter)
	c.ProgramCounter++
	return b
}

func (c *Cpu) push(v byte) {
	c.Write(0x0100|uint16(c.Stack), v)
	c.Stack--
}

func (c *Cpu) pop() byte {
	c.Stack++
	return c.Read(0x0100 | uint16(c.Stack))
}

// pushAddr pushes a 16-bit address high byte first, so the matching popAddr
// reads it back low byte first.
func (c *Cpu) pushAddr(addr uint16) {
	c.push(byte(addr >> 8))
	c.push(byte(addr))
}

func (c *Cpu) popAddr() uint16 {
	lo := c.pop()
	hi := c.pop()
	return mask.Word(hi, lo)
}

// readAddrWithIndirectBug reproduces the JMP ($xxFF) page-wrap bug: if the
// pointer's low byte is 0xFF, the high byte of the target is fetched from
// the start of the same page instead of the next one.
// http://www.6502.org/tutorials/6502opcodes.html#JMP
func (c *Cpu) readAddrWithIndirectBug(ptr uint16) uint16 {
	lo := c.Read(ptr)
	var hi byte
	if ptr&0x00FF == 0x00FF {
		hi = c.Read(ptr & 0xFF00)
	} else {
		hi = c.Read(ptr + 1)
	}
	return mask.Word(hi, lo)
}

// computeAddress performs the effective-address phase of the fetch/decode
// cycle for mode, advancing the ProgramCounter by however many operand
// bytes that mode consumes. For Immediate and Relative, the returned value
// is not an address at all: the literal operand byte occupies its low 8
// bits. Page-crossing is reported only for the modes where it can add a
// cycle (AbsoluteX/Y, IndirectY); for IndirectX the zero-page pointer wraps
// and so never crosses a page.
//
// https://www.nesdev.org/wiki/CPU_addressing_modes
func (c *Cpu) computeAddress(mode AddressingMode) (addr uint16, crossed bool) {
	switch mode {
	case Implied, Accumulator:
		return 0, false

	case Immediate, Relative:
		return uint16(c.readPC()), false

	case ZeroPage:
		return uint16(c.readPC()), false

	case ZeroPageX:
		return uint16(c.readPC() + c.X), false

	case ZeroPageY:
		return uint16(c.readPC() + c.Y), false

	case Absolute:
		lo := c.readPC()
		hi := c.readPC()
		return mask.Word(hi, lo), false

	case AbsoluteX:
		lo := c.readPC()
		hi := c.readPC()
		base := mask.Word(hi, lo)
		addr = base + uint16(c.X)
		return addr, addr&0xFF00 != base&0xFF00

	case AbsoluteY:
		lo := c.readPC()
		hi := c.readPC()
		base := mask.Word(hi, lo)
		addr = base + uint16(c.Y)
		return addr, addr&0xFF00 != base&0xFF00

	case Indirect:
		lo := c.readPC()
		hi := c.readPC()
		return c.readAddrWithIndirectBug(mask.Word(hi, lo)), false

	case IndirectX:
		zp := c.readPC() + c.X
		lo := c.Read(uint16(zp))
		hi := c.Read(uint16(zp + 1))
		return mask.Word(hi, lo), false

	case IndirectY:
		zp := c.readPC()
		lo := c.Read(uint16(zp))
		hi := c.Read(uint16(zp + 1))
		base := mask.Word(hi, lo)
		addr = base + uint16(c.Y)
		return addr, addr&0xFF00 != base&0xFF00

	default:
		panic("cpu: unhandled addressing mode")
	}
}

// readOperand implements the operand-read phase: Immediate/Relative carry
// their value directly in addr's low byte, Accumulator mode reads the
// register, and everything else dereferences the Bus only if the
// instruction actually reads memory (stores and control-flow don't).
func (c *Cpu) readOperand(op Opcode) byte {
	switch op.AddressingMode {
	case Immediate, Relative:
		return byte(c.AbsAddress)
	case Accumulator:
		return c.Accumulator
	default:
		if readsMemory[op.Name] {
			return c.Read(c.AbsAddress)
		}
		return 0
	}
}

// writeBack stores the post-Execute value of M back to wherever it came
// from: the Accumulator under Accumulator mode, memory otherwise.
func (c *Cpu) writeBack(mode AddressingMode) {
	if mode == Accumulator {
		c.Accumulator = c.M
	} else {
		c.Write(c.AbsAddress, c.M)
	}
}

// branch applies a conditional-branch instruction: if the flag condition
// holds, PC is adjusted by the signed offset carried in AbsAddress's low
// byte. It returns the extra cycles the branch costs: 0 if not taken, 1 if
// taken, 2 if taken and the branch crosses a page.
func (c *Cpu) branch(mnemonic string) uint32 {
	cond, ok := branchConditions[mnemonic]
	if !ok {
		panic("cpu: branch dispatch called with non-branch mnemonic " + mnemonic)
	}
	if c.Flags.Contains(cond.flag) != cond.sense {
		return 0
	}

	oldPC := c.ProgramCounter
	offset := int8(byte(c.AbsAddress))
	c.ProgramCounter = uint16(int32(c.ProgramCounter) + int32(offset))

	extra := uint32(1)
	if oldPC&0xFF00 != c.ProgramCounter&0xFF00 {
		extra++
	}
	return extra
}

// Step executes exactly one instruction: fetch, decode, compute the
// effective address, read the operand, execute, and write back. It returns
// the number of clock cycles the instruction took, including any
// page-crossing or branch penalty.
//
// A DecodeError is returned (and reported to Logger) for an illegal
// opcode; execution does not halt, and the byte is treated as a two-cycle
// no-op so callers driving a cycle budget never stall.
func (c *Cpu) Step() (uint32, error) {
	opAddr := c.ProgramCounter
	opByte := c.readPC()

	op, ok := Decode(opByte)
	if !ok {
		c.logger().Printf("cpu: illegal opcode $%02X at $%04X", opByte, opAddr)
		err := &DecodeError{Opcode: opByte, Addr: opAddr}
		c.TotalCycles += 2
		return 2, err
	}

	c.AbsAddress, c.PageCrossed = c.computeAddress(op.AddressingMode)
	c.M = c.readOperand(op)

	cycles := uint32(op.Cycles)
	if c.PageCrossed && pageCrossExtra[op.Name] {
		cycles++
	}

	switch op.Name {
	case "JMP":
		c.ProgramCounter = c.AbsAddress

	case "JSR":
		c.pushAddr(c.ProgramCounter - 1)
		c.ProgramCounter = c.AbsAddress

	case "BCC", "BCS", "BEQ", "BMI", "BNE", "BPL", "BVC", "BVS":
		cycles += c.branch(op.Name)

	default:
		op.Instruction(c)
		if writesBack[op.Name] {
			c.writeBack(op.AddressingMode)
		}
	}

	c.TotalCycles += uint64(cycles)
	return cycles, nil
}

// RunCycles calls Step repeatedly until *remaining drops to zero or below,
// decrementing it by the cost of each instruction. A decode failure does
// not stop the run; the budget is simply charged for it and execution
// continues, matching Step's own no-halt contract.
func (c *Cpu) RunCycles(remaining *int32) {
	for *remaining > 0 {
		cycles, _ := c.Step()
		*remaining -= int32(cycles)
	}
}

// Reset loads the reset vector at $FFFC into the ProgramCounter. Nothing
// else about the Cpu's state changes: registers, flags, and the stack
// pointer are whatever the caller (or a prior instruction stream) left
// them as.
func (c *Cpu) Reset() {
	c.ProgramCounter = c.Bus.ReadAddr(0xFFFC)
}

// NMI services a non-maskable interrupt: the current PC and status are
// pushed, I is set, and execution resumes at the vector in $FFFA. Unlike a
// real NES the core never calls this on its own; a host drives it between
// Step calls when it decides a frame boundary (or other async event) has
// occurred.
func (c *Cpu) NMI() uint32 {
	c.pushAddr(c.ProgramCounter)
	c.push(c.Flags.Byte()&^byte(FlagBreak) | byte(FlagUnused))
	c.Flags.Insert(FlagInterrupt)
	c.ProgramCounter = c.Bus.ReadAddr(0xFFFA)
	c.TotalCycles += 7
	return 7
}

// IRQ services a maskable interrupt request, identically to NMI but
// through the $FFFE vector, and only if I is currently clear.
func (c *Cpu) IRQ() uint32 {
	if c.Flags.Contains(FlagInterrupt) {
		return 0
	}
	c.pushAddr(c.ProgramCounter)
	c.push(c.Flags.Byte()&^byte(FlagBreak) | byte(FlagUnused))
	c.Flags.Insert(FlagInterrupt)
	c.ProgramCounter = c.Bus.ReadAddr(0xFFFE)
	c.TotalCycles += 7
	return 7
}
