package cpu

import "github.com/thelolagemann/dmgcore/internal/mmu"

// loadRegister8 copies register src into register dst, using the
// B, C, D, E, H, L, (HL), A encoding of the LD r, r' block.
//
//	LD r, r'
func (c *CPU) loadRegister8(dst, src uint8) {
	c.setRegister8(dst, c.register8(src))
}

// loadIndirectHL loads the value at (HL) into A, then adjusts HL by
// delta.
//
//	LD A, (HL+)
//	LD A, (HL-)
func (c *CPU) loadIndirectHL(delta int8) {
	c.SetA(c.bus.Read(c.hl))
	c.hl += uint16(delta)
}

// storeIndirectHL stores A at (HL), then adjusts HL by delta.
//
//	LD (HL+), A
//	LD (HL-), A
func (c *CPU) storeIndirectHL(delta int8) {
	c.bus.Write(c.hl, c.A())
	c.hl += uint16(delta)
}

// loadHigh loads the value at 0xFF00+offset into A.
//
//	LDH A, (a8)
//	LD A, (C)
func (c *CPU) loadHigh(offset uint8) {
	c.SetA(c.bus.Read(0xFF00 + uint16(offset)))
}

// storeHigh stores A at 0xFF00+offset.
//
//	LDH (a8), A
//	LD (C), A
func (c *CPU) storeHigh(offset uint8) {
	c.bus.Write(0xFF00+uint16(offset), c.A())
}

// storeStackPointer stores SP at the immediate address, low byte first.
//
//	LD (a16), SP
func (c *CPU) storeStackPointer() {
	mmu.Write16(c.bus, c.readOperand16(), c.sp)
}
