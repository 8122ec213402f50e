package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// shiftLeftArithmetic shifts n left by one bit, and sets the carry flag to the
// most significant bit of n.
//
//	SLA n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	computed := n << 1
	c.setFlags(computed == 0, false, false, n&types.Bit7 != 0)
	return computed
}

// shiftRightArithmetic is SRA n, which keeps bit 7 so the sign of n
// survives. Bit 0 goes to the carry flag.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	computed := n>>1 | n&types.Bit7
	c.setFlags(computed == 0, false, false, n&types.Bit0 != 0)
	return computed
}

// shiftRightLogical is SRL n, which clears bit 7.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	computed := n >> 1
	c.setFlags(computed == 0, false, false, n&types.Bit0 != 0)
	return computed
}

// swap exchanges the nibbles of n, resetting every flag but Z.
func (c *CPU) swap(n uint8) uint8 {
	computed := n<<4 | n>>4
	c.setFlags(computed == 0, false, false, false)
	return computed
}
