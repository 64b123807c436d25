package cpu

// Instruction bodies read their operand from c.M and, for read-modify-write
// opcodes, leave their result there for Step's write-back phase. None of
// them touch the ProgramCounter except RTS, RTI and BRK. JMP, JSR and the
// branches have no function here at all: Step handles them itself (see
// opcodes.go).
//
// https://www.nesdev.org/obelisk-6502-guide/reference.html

// adc - Add with Carry
func adc(c *Cpu) byte {
	a := c.Accumulator
	sum := uint16(a) + uint16(c.M)
	if c.Flags.Contains(FlagCarry) {
		sum++
	}
	c.Flags.SetCarry(sum)
	result := byte(sum)
	c.Flags.SetOverflow(a, c.M, result)
	c.Flags.SetZN(result)
	c.Accumulator = result
	return 0
}

// and - Logical AND
func and(c *Cpu) byte {
	c.Accumulator &= c.M
	c.Flags.SetZN(c.Accumulator)
	return 0
}

// asl - Arithmetic Shift Left
func asl(c *Cpu) byte {
	c.Flags.SetCarry(uint16(c.M) << 1)
	c.M <<= 1
	c.Flags.SetZN(c.M)
	return 0
}

// bit - Bit Test: Z from A&M, N and V copied straight from bits 7 and 6 of
// M, never from the result.
func bit(c *Cpu) byte {
	c.Flags.Remove(FlagZero | FlagNegative | FlagOverflow)
	if c.Accumulator&c.M == 0 {
		c.Flags.Insert(FlagZero)
	}
	if c.M&0x80 != 0 {
		c.Flags.Insert(FlagNegative)
	}
	if c.M&0x40 != 0 {
		c.Flags.Insert(FlagOverflow)
	}
	return 0
}

// brk - Force Interrupt
func brk(c *Cpu) byte {
	c.pushAddr(c.ProgramCounter + 1)
	c.push(c.Flags.Byte() | byte(FlagBreak) | byte(FlagUnused))
	c.Flags.Insert(FlagInterrupt)
	c.ProgramCounter = c.Bus.ReadAddr(0xFFFE)
	return 0
}

// clc - Clear Carry Flag
func clc(c *Cpu) byte { c.Flags.Remove(FlagCarry); return 0 }

// cld - Clear Decimal Mode. The 2A03 has no decimal mode, so this is a
// no-op: D stays one of the always-on bits, and ADC and SBC never look at it.
func cld(c *Cpu) byte { return 0 }

// cli - Clear Interrupt Disable
func cli(c *Cpu) byte { c.Flags.Remove(FlagInterrupt); return 0 }

// clv - Clear Overflow Flag
func clv(c *Cpu) byte { c.Flags.Remove(FlagOverflow); return 0 }

func compare(c *Cpu, reg byte) {
	sum := uint16(reg) + uint16(^c.M) + 1
	c.Flags.SetCarry(sum)
	c.Flags.SetZN(byte(sum))
}

// cmp - Compare (Accumulator)
func cmp(c *Cpu) byte { compare(c, c.Accumulator); return 0 }

// cpx - Compare X Register
func cpx(c *Cpu) byte { compare(c, c.X); return 0 }

// cpy - Compare Y Register
func cpy(c *Cpu) byte { compare(c, c.Y); return 0 }

// dec - Decrement Memory
func dec(c *Cpu) byte { c.M--; c.Flags.SetZN(c.M); return 0 }

// dex - Decrement X Register
func dex(c *Cpu) byte { c.X--; c.Flags.SetZN(c.X); return 0 }

// dey - Decrement Y Register
func dey(c *Cpu) byte { c.Y--; c.Flags.SetZN(c.Y); return 0 }

// eor - Exclusive OR
func eor(c *Cpu) byte { c.Accumulator ^= c.M; c.Flags.SetZN(c.Accumulator); return 0 }

// inc - Increment Memory
func inc(c *Cpu) byte { c.M++; c.Flags.SetZN(c.M); return 0 }

// inx - Increment X Register
func inx(c *Cpu) byte { c.X++; c.Flags.SetZN(c.X); return 0 }

// iny - Increment Y Register
func iny(c *Cpu) byte { c.Y++; c.Flags.SetZN(c.Y); return 0 }

// lda - Load Accumulator
func lda(c *Cpu) byte { c.Accumulator = c.M; c.Flags.SetZN(c.Accumulator); return 0 }

// ldx - Load X Register
func ldx(c *Cpu) byte { c.X = c.M; c.Flags.SetZN(c.X); return 0 }

// ldy - Load Y Register
func ldy(c *Cpu) byte { c.Y = c.M; c.Flags.SetZN(c.Y); return 0 }

// lsr - Logical Shift Right. N is always cleared: a logical right shift
// can never leave bit 7 set, and SetZN reflects that on its own.
func lsr(c *Cpu) byte {
	c.Flags.Remove(FlagCarry)
	if c.M&0x01 != 0 {
		c.Flags.Insert(FlagCarry)
	}
	c.M >>= 1
	c.Flags.SetZN(c.M)
	return 0
}

// nop - No Operation
func nop(c *Cpu) byte { return 0 }

// ora - Logical Inclusive OR
func ora(c *Cpu) byte { c.Accumulator |= c.M; c.Flags.SetZN(c.Accumulator); return 0 }

// pha - Push Accumulator
func pha(c *Cpu) byte { c.push(c.Accumulator); return 0 }

// php - Push Processor Status. The pushed copy always has B and the unused
// bit set, regardless of their live value.
func php(c *Cpu) byte {
	c.push(c.Flags.Byte() | byte(FlagBreak) | byte(FlagUnused))
	return 0
}

// pla - Pull Accumulator
func pla(c *Cpu) byte {
	c.Accumulator = c.pop()
	c.Flags.SetZN(c.Accumulator)
	return 0
}

// plp - Pull Processor Status. Unlike Insert/Remove, this overwrites P
// wholesale with whatever was on the stack.
func plp(c *Cpu) byte { c.Flags = FlagRegister(c.pop()); return 0 }

// rol - Rotate Left
func rol(c *Cpu) byte {
	var carryIn uint16
	if c.Flags.Contains(FlagCarry) {
		carryIn = 1
	}
	result := uint16(c.M)<<1 | carryIn
	c.Flags.SetCarry(result)
	c.M = byte(result)
	c.Flags.SetZN(c.M)
	return 0
}

// ror - Rotate Right
func ror(c *Cpu) byte {
	var carryIn byte
	if c.Flags.Contains(FlagCarry) {
		carryIn = 0x80
	}
	newCarry := c.M&0x01 != 0
	c.M = c.M>>1 | carryIn
	c.Flags.Remove(FlagCarry)
	if newCarry {
		c.Flags.Insert(FlagCarry)
	}
	c.Flags.SetZN(c.M)
	return 0
}

// rti - Return from Interrupt
func rti(c *Cpu) byte {
	c.Flags = FlagRegister(c.pop())
	c.ProgramCounter = c.popAddr()
	return 0
}

// rts - Return from Subroutine. JSR pushed PC-1, so this corrects it back.
func rts(c *Cpu) byte { c.ProgramCounter = c.popAddr() + 1; return 0 }

// sbc - Subtract with Carry, via A + ^M + C (two's-complement subtraction
// reuses adc's carry/overflow shape).
func sbc(c *Cpu) byte {
	a := c.Accumulator
	value := ^c.M
	sum := uint16(a) + uint16(value)
	if c.Flags.Contains(FlagCarry) {
		sum++
	}
	c.Flags.SetCarry(sum)
	result := byte(sum)
	c.Flags.SetOverflow(result, c.M, a)
	c.Flags.SetZN(result)
	c.Accumulator = result
	return 0
}

// sec - Set Carry Flag
func sec(c *Cpu) byte { c.Flags.Insert(FlagCarry); return 0 }

// sed - Set Decimal Flag. Like CLD, a real effect on real 6502 hardware but
// a no-op on the 2A03 beyond the bit itself.
func sed(c *Cpu) byte { c.Flags.Insert(FlagDecimal); return 0 }

// sei - Set Interrupt Disable
func sei(c *Cpu) byte { c.Flags.Insert(FlagInterrupt); return 0 }

// sta - Store Accumulator
func sta(c *Cpu) byte { c.M = c.Accumulator; return 0 }

// stx - Store X Register
func stx(c *Cpu) byte { c.M = c.X; return 0 }

// sty - Store Y Register
func sty(c *Cpu) byte { c.M = c.Y; return 0 }

// tax - Transfer Accumulator to X
func tax(c *Cpu) byte { c.X = c.Accumulator; c.Flags.SetZN(c.X); return 0 }

// tay - Transfer Accumulator to Y
func tay(c *Cpu) byte { c.Y = c.Accumulator; c.Flags.SetZN(c.Y); return 0 }

// tsx - Transfer Stack Pointer to X
func tsx(c *Cpu) byte { c.X = c.Stack; c.Flags.SetZN(c.X); return 0 }

// txa - Transfer X to Accumulator
func txa(c *Cpu) byte { c.Accumulator = c.X; c.Flags.SetZN(c.Accumulator); return 0 }

// txs - Transfer X to Stack Pointer. No flags affected -- this is the one
// register transfer that touches S rather than A, X, or Y.
func txs(c *Cpu) byte { c.Stack = c.X; return 0 }

// tya - Transfer Y to Accumulator
func tya(c *Cpu) byte { c.Accumulator = c.Y; c.Flags.SetZN(c.Accumulator); return 0 }
