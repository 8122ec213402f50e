package cpu

import "github.com/thelolagemann/dmgcore/pkg/bits"

// testBit tests the bit at the given position in n.
//
//	BIT b, r
//	b = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, position uint8) {
	c.setFlags(!bits.Test(n, position), false, true, c.FlagC())
}

// setBit and resetBit do not affect any flags.
//
//	SET b, r
//	RES b, r
func (c *CPU) setBit(n uint8, position uint8) uint8 {
	return bits.Set(n, position)
}

func (c *CPU) resetBit(n uint8, position uint8) uint8 {
	return bits.Reset(n, position)
}
