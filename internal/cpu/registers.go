package cpu

import "fmt"

// Registers is the register file of the CPU. Each register pair is
// stored as a single 16-bit word, the 8-bit registers are the upper
// and lower bytes of their pair. The lower byte of AF is the flag
// register, whose lower nibble always reads 0.
type Registers struct {
	af, bc, de, hl uint16
	sp, pc         uint16
}

// NewRegisters returns the register file as left by the DMG boot ROM.
func NewRegisters() Registers {
	return Registers{
		af: 0x01B0,
		bc: 0x0013,
		de: 0x00D8,
		hl: 0x014D,
		sp: 0xFFFE,
		pc: 0x0100,
	}
}

func upper(rr uint16) uint8 { return uint8(rr >> 8) }

func lower(rr uint16) uint8 { return uint8(rr) }

func withUpper(rr uint16, v uint8) uint16 { return uint16(v)<<8 | rr&0x00FF }

func withLower(rr uint16, v uint8) uint16 { return rr&0xFF00 | uint16(v) }

func (r *Registers) A() uint8 { return upper(r.af) }
func (r *Registers) SetA(v uint8) { r.af = withUpper(r.af, v) }
func (r *Registers) F() uint8 { return lower(r.af) }
func (r *Registers) SetF(v uint8) { r.af = withLower(r.af, v&0xF0) }
func (r *Registers) B() uint8 { return upper(r.bc) }
func (r *Registers) SetB(v uint8) { r.bc = withUpper(r.bc, v) }
func (r *Registers) C() uint8 { return lower(r.bc) }
func (r *Registers) SetC(v uint8) { r.bc = withLower(r.bc, v) }
func (r *Registers) D() uint8 { return upper(r.de) }
func (r *Registers) SetD(v uint8) { r.de = withUpper(r.de, v) }
func (r *Registers) E() uint8 { return lower(r.de) }
func (r *Registers) SetE(v uint8) { r.de = withLower(r.de, v) }
func (r *Registers) H() uint8 { return upper(r.hl) }
func (r *Registers) SetH(v uint8) { r.hl = withUpper(r.hl, v) }
func (r *Registers) L() uint8 { return lower(r.hl) }
func (r *Registers) SetL(v uint8) { r.hl = withLower(r.hl, v) }
func (r *Registers) AF() uint16 { return r.af }
func (r *Registers) SetAF(v uint16) { r.af = v & 0xFFF0 }
func (r *Registers) BC() uint16 { return r.bc }
func (r *Registers) SetBC(v uint16) { r.bc = v }
func (r *Registers) DE() uint16 { return r.de }
func (r *Registers) SetDE(v uint16) { r.de = v }
func (r *Registers) HL() uint16 { return r.hl }
func (r *Registers) SetHL(v uint16) { r.hl = v }
func (r *Registers) SP() uint16 { return r.sp }
func (r *Registers) SetSP(v uint16) { r.sp = v }
func (r *Registers) PC() uint16 { return r.pc }
func (r *Registers) SetPC(v uint16) { r.pc = v }

// String returns the register file in a form suitable for
// logging and the debugger.
func (r *Registers) String() string {
	return fmt.Sprintf(
		"AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X Z=%d N=%d H=%d C=%d",
		r.af, r.bc, r.de, r.hl, r.sp, r.pc,
		flagValue(r.FlagZ()), flagValue(r.FlagN()), flagValue(r.FlagH()), flagValue(r.FlagC()),
	)
}

func flagValue(set bool) int {
	if set {
		return 1
	}
	return 0
}
