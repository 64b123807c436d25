package cpu

// A Flag identifies a single bit of the status register (P).
//
// 7654 3210
// NV1B DIZC
type Flag byte

const (
	FlagCarry     Flag = 1 << iota // bit 0, C
	FlagZero                       // bit 1, Z
	FlagInterrupt                  // bit 2, I
	FlagDecimal                    // bit 3, D -- unused by the 2A03
	FlagBreak                      // bit 4, B -- only meaningful in a pushed copy
	FlagUnused                     // bit 5 -- always reads 1 in a freshly constructed/cleared register
	FlagOverflow                   // bit 6, V
	FlagNegative                   // bit 7, N
)

// alwaysOn is the value of P immediately after construction or Clear: D and
// the unused bit set, everything else clear. https://www.nesdev.org/wiki/Status_flags
const alwaysOn = FlagRegister(FlagDecimal | FlagUnused)

// FlagRegister is the 8-bit status word (P). Instructions never poke its
// bits directly; they go through the typed setters below, which is what
// keeps set_zn/set_v/set_c consistent across every opcode that uses them.
type FlagRegister byte

// NoneFlags returns the canonical "nothing set" register: the two always-on
// bits and nothing else. This is also the value a freshly constructed Cpu
// starts from; Reset leaves the flags as they are.
func NoneFlags() FlagRegister { return alwaysOn }

// Contains reports whether f is set.
func (p FlagRegister) Contains(f Flag) bool { return byte(p)&byte(f) != 0 }

// Insert sets f.
func (p *FlagRegister) Insert(f Flag) { *p |= FlagRegister(f) }

// Remove clears f.
func (p *FlagRegister) Remove(f Flag) { *p &^= FlagRegister(f) }

// Clear resets the register to the two always-on bits only.
func (p *FlagRegister) Clear() { *p = alwaysOn }

// Byte returns the raw 8-bit encoding, e.g. for pushing onto the stack.
func (p FlagRegister) Byte() byte { return byte(p) }

// SetZN sets Z if v is zero and N if v, read as signed, is negative. Every
// instruction that loads a register or produces a read-modify-write result
// funnels its output through this.
func (p *FlagRegister) SetZN(v byte) {
	p.Remove(FlagZero | FlagNegative)
	if v == 0 {
		p.Insert(FlagZero)
	}
	if int8(v) < 0 {
		p.Insert(FlagNegative)
	}
}

// SetOverflow computes the overflow for a+b=c (ADC's shape, or SBC's
// two's-complement reformulation when the caller passes the operands in the
// order the instruction needs) and sets or clears V accordingly.
func (p *FlagRegister) SetOverflow(a, b, c byte) {
	p.Remove(FlagOverflow)
	if (a^c)&(b^c)&0x80 != 0 {
		p.Insert(FlagOverflow)
	}
}

// SetCarry sets C iff v has any bit set above bit 7 -- i.e. an 8-bit
// addition or comparison overflowed into bit 8.
func (p *FlagRegister) SetCarry(v uint16) {
	p.Remove(FlagCarry)
	if v > 0xFF {
		p.Insert(FlagCarry)
	}
}
