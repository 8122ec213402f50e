package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// rotateLeftCarry rotates n left by 1 bit, bit 7 wrapping round to
// bit 0 and into the carry flag.
//
//	RLC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	computed := n<<1 | n>>7
	c.setFlags(computed == 0, false, false, n&types.Bit7 != 0)
	return computed
}

// rotateRightCarry is RRC n, bit 0 wrapping round to bit 7 and into
// the carry flag.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	computed := n>>1 | n<<7
	c.setFlags(computed == 0, false, false, n&types.Bit0 != 0)
	return computed
}

// rotateLeft is RL n, a 9-bit rotation through the carry flag.
func (c *CPU) rotateLeft(n uint8) uint8 {
	computed := n << 1
	if c.FlagC() {
		computed |= types.Bit0
	}
	c.setFlags(computed == 0, false, false, n&types.Bit7 != 0)
	return computed
}

// rotateRight is RR n, a 9-bit rotation through the carry flag.
func (c *CPU) rotateRight(n uint8) uint8 {
	computed := n >> 1
	if c.FlagC() {
		computed |= types.Bit7
	}
	c.setFlags(computed == 0, false, false, n&types.Bit0 != 0)
	return computed
}

// rotateAccumulator applies one of the rotations above to A. Unlike
// their CB prefixed forms, RLCA, RRCA, RLA and RRA always reset the
// zero flag.
func (c *CPU) rotateAccumulator(rotate func(*CPU, uint8) uint8) {
	c.SetA(rotate(c, c.A()))
	c.SetFlagZ(false)
}
