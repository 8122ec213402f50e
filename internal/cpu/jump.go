package cpu

import "github.com/thelolagemann/dmgcore/internal/mmu"

// condition is a branch condition, indexed by bits 4-3 of the opcode.
type condition uint8

const (
	conditionNZ condition = iota
	conditionZ
	conditionNC
	conditionC
)

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// test returns true if the condition holds for the current flags.
func (c *CPU) test(cond condition) bool {
	switch cond {
	case conditionNZ:
		return !c.FlagZ()
	case conditionZ:
		return c.FlagZ()
	case conditionNC:
		return !c.FlagC()
	case conditionC:
		return c.FlagC()
	}
	return false
}

// pushStack pushes a 16 bit value onto the stack. SP is decremented by
// 2 before the value is written, low byte first.
func (c *CPU) pushStack(value uint16) {
	c.sp -= 2
	mmu.Write16(c.bus, c.sp, value)
}

// popStack pops a 16 bit value off the stack.
func (c *CPU) popStack() uint16 {
	value := mmu.Read16(c.bus, c.sp)
	c.sp += 2
	return value
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.pushStack(c.nextPC())
	c.jump(address)
}

// callConditional reads the target address and calls it if the
// condition holds.
//
//	CALL cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) callConditional(cond condition) bool {
	address := c.readOperand16()
	if c.test(cond) {
		c.call(address)
		return true
	}
	return false
}

// ret pops the return address off the stack and jumps to it.
//
//	RET
func (c *CPU) ret() {
	c.jump(c.popStack())
}

// retConditional returns if the condition holds.
//
//	RET cc
//	cc = NZ, Z, NC, C
func (c *CPU) retConditional(cond condition) bool {
	if c.test(cond) {
		c.ret()
		return true
	}
	return false
}

// jumpConditional reads the target address and jumps to it if the
// condition holds.
//
//	JP cc, nn
//	cc = NZ, Z, NC, C
//	nn = 16-bit immediate value
func (c *CPU) jumpConditional(cond condition) bool {
	address := c.readOperand16()
	if c.test(cond) {
		c.jump(address)
		return true
	}
	return false
}

// jumpRelative jumps to the address relative to the instruction
// following the current one.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.jump(c.nextPC() + uint16(int8(offset)))
}

// jumpRelativeConditional jumps relative to the instruction following
// the current one if the condition holds.
//
//	JR cc, e
//	cc = NZ, Z, NC, C
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelativeConditional(cond condition) bool {
	offset := c.readOperand()
	if c.test(cond) {
		c.jumpRelative(offset)
		return true
	}
	return false
}

// restart pushes the address of the next instruction onto the stack
// and jumps to the restart vector.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) restart(vector uint16) {
	c.call(vector)
}
