package cpu

// aluOperations are the 8-bit arithmetic operations on A, indexed by
// bits 5-3 of their opcode.
var aluOperations = [8]struct {
	name string
	fn   func(*CPU, uint8)
}{
	{"ADD A,", (*CPU).add},
	{"ADC A,", (*CPU).addWithCarry},
	{"SUB ", (*CPU).sub},
	{"SBC A,", (*CPU).subWithCarry},
	{"AND ", (*CPU).and},
	{"XOR ", (*CPU).xor},
	{"OR ", (*CPU).or},
	{"CP ", (*CPU).compare},
}

// add adds n to the A Register.
//
//	ADD A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8) {
	a := c.A()
	result := uint16(a) + uint16(n)
	c.SetA(uint8(result))
	c.setFlags(uint8(result) == 0, false, (a&0xF)+(n&0xF) > 0xF, result > 0xFF)
}

// addWithCarry adds n plus the carry flag to the A Register.
//
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addWithCarry(n uint8) {
	a := c.A()
	carry := uint8(0)
	if c.FlagC() {
		carry = 1
	}
	result := uint16(a) + uint16(n) + uint16(carry)
	c.SetA(uint8(result))
	c.setFlags(uint8(result) == 0, false, (a&0xF)+(n&0xF)+carry > 0xF, result > 0xFF)
}

// sub subtracts n from the A Register.
//
//	SUB n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8) {
	a := c.A()
	c.SetA(a - n)
	c.setFlags(a == n, true, a&0xF < n&0xF, a < n)
}

// subWithCarry subtracts n plus the carry flag from the A Register.
//
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subWithCarry(n uint8) {
	a := c.A()
	carry := uint8(0)
	if c.FlagC() {
		carry = 1
	}
	result := a - n - carry
	c.SetA(result)
	c.setFlags(
		result == 0,
		true,
		uint16(a&0xF) < uint16(n&0xF)+uint16(carry),
		uint16(a) < uint16(n)+uint16(carry),
	)
}

// compare compares n with the A Register, setting the flags as sub
// would without storing the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) compare(n uint8) {
	a := c.A()
	c.setFlags(a == n, true, a&0xF < n&0xF, a < n)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.SetA(c.A() & n)
	c.setFlags(c.A() == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.SetA(c.A() | n)
	c.setFlags(c.A() == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.SetA(c.A() ^ n)
	c.setFlags(c.A() == 0, false, false, false)
}

// increment returns n+1. The carry flag is not affected.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) increment(n uint8) uint8 {
	result := n + 1
	c.setFlags(result == 0, false, n&0xF == 0xF, c.FlagC())
	return result
}

// decrement returns n-1. The carry flag is not affected.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
func (c *CPU) decrement(n uint8) uint8 {
	result := n - 1
	c.setFlags(result == 0, true, n&0xF == 0, c.FlagC())
	return result
}

// addHL adds n to the HL Register pair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.hl
	result := uint32(hl) + uint32(n)
	c.hl = uint16(result)
	c.setFlags(c.FlagZ(), false, (hl&0xFFF)+(n&0xFFF) > 0xFFF, result > 0xFFFF)
}

// addSPSigned returns SP plus the signed offset e, as used by both
// ADD SP, e and LD HL, SP+e.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3 of the low byte.
//	C - Set if carry from bit 7 of the low byte.
func (c *CPU) addSPSigned(e uint8) uint16 {
	sp := c.sp
	result := sp + uint16(int8(e))
	c.setFlags(false, false, (sp&0xF)+uint16(e&0xF) > 0xF, (sp&0xFF)+uint16(e) > 0xFF)
	return result
}

// decimalAdjust corrects the A Register to binary coded decimal after
// an addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to the correction.
func (c *CPU) decimalAdjust() {
	a := c.A()
	correction := uint8(0)
	carry := c.FlagC()

	if c.FlagH() || (!c.FlagN() && a&0xF > 0x9) {
		correction |= 0x06
	}
	if carry || (!c.FlagN() && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if c.FlagN() {
		a -= correction
	} else {
		a += correction
	}

	c.SetA(a)
	c.setFlags(a == 0, c.FlagN(), false, carry)
}

// complement flips every bit of the A Register.
//
//	CPL
func (c *CPU) complement() {
	c.SetA(^c.A())
	c.setFlags(c.FlagZ(), true, true, c.FlagC())
}

// setCarryFlag sets the carry flag.
//
//	SCF
func (c *CPU) setCarryFlag() {
	c.setFlags(c.FlagZ(), false, false, true)
}

// complementCarryFlag flips the carry flag.
//
//	CCF
func (c *CPU) complementCarryFlag() {
	c.setFlags(c.FlagZ(), false, false, !c.FlagC())
}
