package cpu

// An AddressingMode tells the Cpu where to access (look for) a given byte of
// memory. There are 13 possible modes.
//
// Most Instructions can index the full 64 kB range of memory, that is, 256
// pages of 256 bytes. The exception is ZeroPage, which is confined to the
// first page of 256 bytes.
//
// https://problemkaputt.de/everynes.htm#cpumemoryaddressing
// https://www.nesdev.org/wiki/CPU_addressing_modes
type AddressingMode int

const (
	// 0 increments

	Implied     AddressingMode = iota // does not advance the ProgramCounter
	Accumulator                       // use Cpu.Accumulator

	// 1 increment, 1 (or 3) read

	Immediate // use the ProgramCounter itself
	ZeroPage  // 0x0000-0x00ff
	ZeroPageX
	ZeroPageY // LDX, STX
	IndirectX // rarely used

	IndirectY // 3 reads, may involve page crossing
	Relative  // branches only; signed offset

	// 2 increments, 2 reads

	Absolute
	AbsoluteX // may involve page crossing
	AbsoluteY // may involve page crossing

	// 2 increments, 4 reads

	Indirect // JMP only; subject to the page-wrap bug
)

// An Opcode is associated with a unique byte value (0x00-0xff). There are
// 256 possible opcodes (16x16), but only 151 correspond to a valid Cpu
// instruction, spanning 56 unique mnemonics.
//
// Multiple Opcodes may name the same Instruction, differing only in how the
// operand is addressed; that addressing is resolved by the Cpu, not the
// Instruction itself.
type Opcode struct {
	AddressingMode AddressingMode

	// Clock cycles required before any page-crossing or branch penalty;
	// typically 2 to 7. https://www.nesdev.org/wiki/Cycle_counting
	Cycles byte

	// Instruction reads its operand from c.M (set by decode) and, for
	// read-modify-write opcodes, leaves its result there for write-back.
	// JMP, JSR, and the eight branches are dispatched by Step directly and
	// leave this nil.
	Instruction func(c *Cpu) byte

	Name string // for the debugger and error messages
}

// Decode maps a fetched opcode byte to its descriptor. It is a pure
// function: it consults no Cpu state and has no side effects.
func Decode(opcode byte) (Opcode, bool) {
	op, ok := Opcodes[opcode]
	return op, ok
}

// Opcodes lists all 151 byte values recognised by the Cpu, mapped to their
// 56 unique instructions. Generated from the standard timing chart:
// http://www.6502.org/tutorials/6502opcodes.html
var Opcodes = map[byte]Opcode{
	0x69: {Instruction: adc, Name: "ADC", Cycles: 2, AddressingMode: Immediate},
	0x65: {Instruction: adc, Name: "ADC", Cycles: 3, AddressingMode: ZeroPage},
	0x75: {Instruction: adc, Name: "ADC", Cycles: 4, AddressingMode: ZeroPageX},
	0x6D: {Instruction: adc, Name: "ADC", Cycles: 4, AddressingMode: Absolute},
	0x7D: {Instruction: adc, Name: "ADC", Cycles: 4, AddressingMode: AbsoluteX},
	0x79: {Instruction: adc, Name: "ADC", Cycles: 4, AddressingMode: AbsoluteY},
	0x61: {Instruction: adc, Name: "ADC", Cycles: 6, AddressingMode: IndirectX},
	0x71: {Instruction: adc, Name: "ADC", Cycles: 5, AddressingMode: IndirectY},

	0x29: {Instruction: and, Name: "AND", Cycles: 2, AddressingMode: Immediate},
	0x25: {Instruction: and, Name: "AND", Cycles: 3, AddressingMode: ZeroPage},
	0x35: {Instruction: and, Name: "AND", Cycles: 4, AddressingMode: ZeroPageX},
	0x2D: {Instruction: and, Name: "AND", Cycles: 4, AddressingMode: Absolute},
	0x3D: {Instruction: and, Name: "AND", Cycles: 4, AddressingMode: AbsoluteX},
	0x39: {Instruction: and, Name: "AND", Cycles: 4, AddressingMode: AbsoluteY},
	0x21: {Instruction: and, Name: "AND", Cycles: 6, AddressingMode: IndirectX},
	0x31: {Instruction: and, Name: "AND", Cycles: 5, AddressingMode: IndirectY},

	0x0A: {Instruction: asl, Name: "ASL", Cycles: 2, AddressingMode: Accumulator},
	0x06: {Instruction: asl, Name: "ASL", Cycles: 5, AddressingMode: ZeroPage},
	0x16: {Instruction: asl, Name: "ASL", Cycles: 6, AddressingMode: ZeroPageX},
	0x0E: {Instruction: asl, Name: "ASL", Cycles: 6, AddressingMode: Absolute},
	0x1E: {Instruction: asl, Name: "ASL", Cycles: 7, AddressingMode: AbsoluteX},

	0x90: {Name: "BCC", Cycles: 2, AddressingMode: Relative},
	0xB0: {Name: "BCS", Cycles: 2, AddressingMode: Relative},
	0xF0: {Name: "BEQ", Cycles: 2, AddressingMode: Relative},

	0x24: {Instruction: bit, Name: "BIT", Cycles: 3, AddressingMode: ZeroPage},
	0x2C: {Instruction: bit, Name: "BIT", Cycles: 4, AddressingMode: Absolute},

	0x30: {Name: "BMI", Cycles: 2, AddressingMode: Relative},
	0xD0: {Name: "BNE", Cycles: 2, AddressingMode: Relative},
	0x10: {Name: "BPL", Cycles: 2, AddressingMode: Relative},

	0x00: {Instruction: brk, Name: "BRK", Cycles: 7, AddressingMode: Implied},

	0x50: {Name: "BVC", Cycles: 2, AddressingMode: Relative},
	0x70: {Name: "BVS", Cycles: 2, AddressingMode: Relative},

	0x18: {Instruction: clc, Name: "CLC", Cycles: 2, AddressingMode: Implied},
	0xD8: {Instruction: cld, Name: "CLD", Cycles: 2, AddressingMode: Implied},
	0x58: {Instruction: cli, Name: "CLI", Cycles: 2, AddressingMode: Implied},
	0xB8: {Instruction: clv, Name: "CLV", Cycles: 2, AddressingMode: Implied},

	0xC9: {Instruction: cmp, Name: "CMP", Cycles: 2, AddressingMode: Immediate},
	0xC5: {Instruction: cmp, Name: "CMP", Cycles: 3, AddressingMode: ZeroPage},
	0xD5: {Instruction: cmp, Name: "CMP", Cycles: 4, AddressingMode: ZeroPageX},
	0xCD: {Instruction: cmp, Name: "CMP", Cycles: 4, AddressingMode: Absolute},
	0xDD: {Instruction: cmp, Name: "CMP", Cycles: 4, AddressingMode: AbsoluteX},
	0xD9: {Instruction: cmp, Name: "CMP", Cycles: 4, AddressingMode: AbsoluteY},
	0xC1: {Instruction: cmp, Name: "CMP", Cycles: 6, AddressingMode: IndirectX},
	0xD1: {Instruction: cmp, Name: "CMP", Cycles: 5, AddressingMode: IndirectY},

	0xE0: {Instruction: cpx, Name: "CPX", Cycles: 2, AddressingMode: Immediate},
	0xE4: {Instruction: cpx, Name: "CPX", Cycles: 3, AddressingMode: ZeroPage},
	0xEC: {Instruction: cpx, Name: "CPX", Cycles: 4, AddressingMode: Absolute},

	0xC0: {Instruction: cpy, Name: "CPY", Cycles: 2, AddressingMode: Immediate},
	0xC4: {Instruction: cpy, Name: "CPY", Cycles: 3, AddressingMode: ZeroPage},
	0xCC: {Instruction: cpy, Name: "CPY", Cycles: 4, AddressingMode: Absolute},

	0xC6: {Instruction: dec, Name: "DEC", Cycles: 5, AddressingMode: ZeroPage},
	0xD6: {Instruction: dec, Name: "DEC", Cycles: 6, AddressingMode: ZeroPageX},
	0xCE: {Instruction: dec, Name: "DEC", Cycles: 6, AddressingMode: Absolute},
	0xDE: {Instruction: dec, Name: "DEC", Cycles: 7, AddressingMode: AbsoluteX},

	0xCA: {Instruction: dex, Name: "DEX", Cycles: 2, AddressingMode: Implied},
	0x88: {Instruction: dey, Name: "DEY", Cycles: 2, AddressingMode: Implied},

	0x49: {Instruction: eor, Name: "EOR", Cycles: 2, AddressingMode: Immediate},
	0x45: {Instruction: eor, Name: "EOR", Cycles: 3, AddressingMode: ZeroPage},
	0x55: {Instruction: eor, Name: "EOR", Cycles: 4, AddressingMode: ZeroPageX},
	0x4D: {Instruction: eor, Name: "EOR", Cycles: 4, AddressingMode: Absolute},
	0x5D: {Instruction: eor, Name: "EOR", Cycles: 4, AddressingMode: AbsoluteX},
	0x59: {Instruction: eor, Name: "EOR", Cycles: 4, AddressingMode: AbsoluteY},
	0x41: {Instruction: eor, Name: "EOR", Cycles: 6, AddressingMode: IndirectX},
	0x51: {Instruction: eor, Name: "EOR", Cycles: 5, AddressingMode: IndirectY},

	0xE6: {Instruction: inc, Name: "INC", Cycles: 5, AddressingMode: ZeroPage},
	0xF6: {Instruction: inc, Name: "INC", Cycles: 6, AddressingMode: ZeroPageX},
	0xEE: {Instruction: inc, Name: "INC", Cycles: 6, AddressingMode: Absolute},
	0xFE: {Instruction: inc, Name: "INC", Cycles: 7, AddressingMode: AbsoluteX},

	0xE8: {Instruction: inx, Name: "INX", Cycles: 2, AddressingMode: Implied},
	0xC8: {Instruction: iny, Name: "INY", Cycles: 2, AddressingMode: Implied},

	0x4C: {Name: "JMP", Cycles: 3, AddressingMode: Absolute},
	0x6C: {Name: "JMP", Cycles: 5, AddressingMode: Indirect},

	0x20: {Name: "JSR", Cycles: 6, AddressingMode: Absolute},

	0xA9: {Instruction: lda, Name: "LDA", Cycles: 2, AddressingMode: Immediate},
	0xA5: {Instruction: lda, Name: "LDA", Cycles: 3, AddressingMode: ZeroPage},
	0xB5: {Instruction: lda, Name: "LDA", Cycles: 4, AddressingMode: ZeroPageX},
	0xAD: {Instruction: lda, Name: "LDA", Cycles: 4, AddressingMode: Absolute},
	0xBD: {Instruction: lda, Name: "LDA", Cycles: 4, AddressingMode: AbsoluteX},
	0xB9: {Instruction: lda, Name: "LDA", Cycles: 4, AddressingMode: AbsoluteY},
	0xA1: {Instruction: lda, Name: "LDA", Cycles: 6, AddressingMode: IndirectX},
	0xB1: {Instruction: lda, Name: "LDA", Cycles: 5, AddressingMode: IndirectY},

	0xA2: {Instruction: ldx, Name: "LDX", Cycles: 2, AddressingMode: Immediate},
	0xA6: {Instruction: ldx, Name: "LDX", Cycles: 3, AddressingMode: ZeroPage},
	0xB6: {Instruction: ldx, Name: "LDX", Cycles: 4, AddressingMode: ZeroPageY},
	0xAE: {Instruction: ldx, Name: "LDX", Cycles: 4, AddressingMode: Absolute},
	0xBE: {Instruction: ldx, Name: "LDX", Cycles: 4, AddressingMode: AbsoluteY},

	0xA0: {Instruction: ldy, Name: "LDY", Cycles: 2, AddressingMode: Immediate},
	0xA4: {Instruction: ldy, Name: "LDY", Cycles: 3, AddressingMode: ZeroPage},
	0xB4: {Instruction: ldy, Name: "LDY", Cycles: 4, AddressingMode: ZeroPageX},
	0xAC: {Instruction: ldy, Name: "LDY", Cycles: 4, AddressingMode: Absolute},
	0xBC: {Instruction: ldy, Name: "LDY", Cycles: 4, AddressingMode: AbsoluteX},

	0x4A: {Instruction: lsr, Name: "LSR", Cycles: 2, AddressingMode: Accumulator},
	0x46: {Instruction: lsr, Name: "LSR", Cycles: 5, AddressingMode: ZeroPage},
	0x56: {Instruction: lsr, Name: "LSR", Cycles: 6, AddressingMode: ZeroPageX},
	0x4E: {Instruction: lsr, Name: "LSR", Cycles: 6, AddressingMode: Absolute},
	0x5E: {Instruction: lsr, Name: "LSR", Cycles: 7, AddressingMode: AbsoluteX},

	0xEA: {Instruction: nop, Name: "NOP", Cycles: 2, AddressingMode: Implied},

	0x09: {Instruction: ora, Name: "ORA", Cycles: 2, AddressingMode: Immediate},
	0x05: {Instruction: ora, Name: "ORA", Cycles: 3, AddressingMode: ZeroPage},
	0x15: {Instruction: ora, Name: "ORA", Cycles: 4, AddressingMode: ZeroPageX},
	0x0D: {Instruction: ora, Name: "ORA", Cycles: 4, AddressingMode: Absolute},
	0x1D: {Instruction: ora, Name: "ORA", Cycles: 4, AddressingMode: AbsoluteX},
	0x19: {Instruction: ora, Name: "ORA", Cycles: 4, AddressingMode: AbsoluteY},
	0x01: {Instruction: ora, Name: "ORA", Cycles: 6, AddressingMode: IndirectX},
	0x11: {Instruction: ora, Name: "ORA", Cycles: 5, AddressingMode: IndirectY},

	0x48: {Instruction: pha, Name: "PHA", Cycles: 3, AddressingMode: Implied},
	0x08: {Instruction: php, Name: "PHP", Cycles: 3, AddressingMode: Implied},
	0x68: {Instruction: pla, Name: "PLA", Cycles: 4, AddressingMode: Implied},
	0x28: {Instruction: plp, Name: "PLP", Cycles: 4, AddressingMode: Implied},

	0x2A: {Instruction: rol, Name: "ROL", Cycles: 2, AddressingMode: Accumulator},
	0x26: {Instruction: rol, Name: "ROL", Cycles: 5, AddressingMode: ZeroPage},
	0x36: {Instruction: rol, Name: "ROL", Cycles: 6, AddressingMode: ZeroPageX},
	0x2E: {Instruction: rol, Name: "ROL", Cycles: 6, AddressingMode: Absolute},
	0x3E: {Instruction: rol, Name: "ROL", Cycles: 7, AddressingMode: AbsoluteX},

	0x6A: {Instruction: ror, Name: "ROR", Cycles: 2, AddressingMode: Accumulator},
	0x66: {Instruction: ror, Name: "ROR", Cycles: 5, AddressingMode: ZeroPage},
	0x76: {Instruction: ror, Name: "ROR", Cycles: 6, AddressingMode: ZeroPageX},
	0x6E: {Instruction: ror, Name: "ROR", Cycles: 6, AddressingMode: Absolute},
	0x7E: {Instruction: ror, Name: "ROR", Cycles: 7, AddressingMode: AbsoluteX},

	0x40: {Instruction: rti, Name: "RTI", Cycles: 6, AddressingMode: Implied},
	0x60: {Instruction: rts, Name: "RTS", Cycles: 6, AddressingMode: Implied},

	0xE9: {Instruction: sbc, Name: "SBC", Cycles: 2, AddressingMode: Immediate},
	0xE5: {Instruction: sbc, Name: "SBC", Cycles: 3, AddressingMode: ZeroPage},
	0xF5: {Instruction: sbc, Name: "SBC", Cycles: 4, AddressingMode: ZeroPageX},
	0xED: {Instruction: sbc, Name: "SBC", Cycles: 4, AddressingMode: Absolute},
	0xFD: {Instruction: sbc, Name: "SBC", Cycles: 4, AddressingMode: AbsoluteX},
	0xF9: {Instruction: sbc, Name: "SBC", Cycles: 4, AddressingMode: AbsoluteY},
	0xE1: {Instruction: sbc, Name: "SBC", Cycles: 6, AddressingMode: IndirectX},
	0xF1: {Instruction: sbc, Name: "SBC", Cycles: 5, AddressingMode: IndirectY},

	0x38: {Instruction: sec, Name: "SEC", Cycles: 2, AddressingMode: Implied},
	0xF8: {Instruction: sed, Name: "SED", Cycles: 2, AddressingMode: Implied},
	0x78: {Instruction: sei, Name: "SEI", Cycles: 2, AddressingMode: Implied},

	0x85: {Instruction: sta, Name: "STA", Cycles: 3, AddressingMode: ZeroPage},
	0x95: {Instruction: sta, Name: "STA", Cycles: 4, AddressingMode: ZeroPageX},
	0x8D: {Instruction: sta, Name: "STA", Cycles: 4, AddressingMode: Absolute},
	0x9D: {Instruction: sta, Name: "STA", Cycles: 5, AddressingMode: AbsoluteX},
	0x99: {Instruction: sta, Name: "STA", Cycles: 5, AddressingMode: AbsoluteY},
	0x81: {Instruction: sta, Name: "STA", Cycles: 6, AddressingMode: IndirectX},
	0x91: {Instruction: sta, Name: "STA", Cycles: 6, AddressingMode: IndirectY},

	0x86: {Instruction: stx, Name: "STX", Cycles: 3, AddressingMode: ZeroPage},
	0x96: {Instruction: stx, Name: "STX", Cycles: 4, AddressingMode: ZeroPageY},
	0x8E: {Instruction: stx, Name: "STX", Cycles: 4, AddressingMode: Absolute},

	0x84: {Instruction: sty, Name: "STY", Cycles: 3, AddressingMode: ZeroPage},
	0x94: {Instruction: sty, Name: "STY", Cycles: 4, AddressingMode: ZeroPageX},
	0x8C: {Instruction: sty, Name: "STY", Cycles: 4, AddressingMode: Absolute},

	0xAA: {Instruction: tax, Name: "TAX", Cycles: 2, AddressingMode: Implied},
	0xA8: {Instruction: tay, Name: "TAY", Cycles: 2, AddressingMode: Implied},
	0xBA: {Instruction: tsx, Name: "TSX", Cycles: 2, AddressingMode: Implied},
	0x8A: {Instruction: txa, Name: "TXA", Cycles: 2, AddressingMode: Implied},
	0x9A: {Instruction: txs, Name: "TXS", Cycles: 2, AddressingMode: Implied},
	0x98: {Instruction: tya, Name: "TYA", Cycles: 2, AddressingMode: Implied},
}

// readsMemory is the set of mnemonics whose operand-read phase dereferences
// the Bus rather than using a register or the literal Immediate/Relative
// byte.
var readsMemory = map[string]bool{
	"ADC": true, "AND": true, "ASL": true, "BIT": true,
	"CMP": true, "CPX": true, "CPY": true, "DEC": true,
	"EOR": true, "INC": true, "LDA": true, "LDX": true,
	"LDY": true, "LSR": true, "ORA": true, "ROL": true,
	"ROR": true, "SBC": true,
}

// writesBack is the set of mnemonics whose result (left in c.M) replaces
// the operand -- memory, or the Accumulator under Accumulator mode -- once
// Instruction returns.
var writesBack = map[string]bool{
	"ASL": true, "DEC": true, "INC": true, "LSR": true,
	"ROL": true, "ROR": true, "STA": true, "STX": true, "STY": true,
}

// pageCrossExtra is the set of mnemonics that incur an extra cycle when
// their effective-address computation crosses a page.
var pageCrossExtra = map[string]bool{
	"ADC": true, "AND": true, "CMP": true, "EOR": true,
	"LDA": true, "LDX": true, "LDY": true, "ORA": true, "SBC": true,
}

// branchCondition names the flag a branch mnemonic tests and the sense
// (set or clear) that causes it to be taken.
type branchCondition struct {
	flag  Flag
	sense bool
}

var branchConditions = map[string]branchCondition{
	"BCC": {FlagCarry, false},
	"BCS": {FlagCarry, true},
	"BNE": {FlagZero, false},
	"BEQ": {FlagZero, true},
	"BPL": {FlagNegative, false},
	"BMI": {FlagNegative, true},
	"BVC": {FlagOverflow, false},
	"BVS": {FlagOverflow, true},
}
