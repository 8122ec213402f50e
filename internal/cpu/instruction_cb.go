package cpu

import "fmt"

// cbOperations are the rotate, shift and swap operations of the CB
// prefixed instructions 0x00 - 0x3F, indexed by bits 5-3.
var cbOperations = [8]struct {
	name string
	fn   func(*CPU, uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeft},
	{"RR", (*CPU).rotateRight},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

func init() {
	for opcode := 0; opcode < 0x100; opcode++ {
		reg, bit := uint8(opcode)&7, uint8(opcode>>3)&7
		name := registerNames[reg]

		switch opcode >> 6 {
		case 0:
			op := cbOperations[bit]
			DefineInstructionCB(uint8(opcode), op.name+" "+name, func(c *CPU) {
				c.setRegister8(reg, op.fn(c, c.register8(reg)))
			})
		case 1:
			DefineInstructionCB(uint8(opcode), fmt.Sprintf("BIT %d,%s", bit, name), func(c *CPU) {
				c.testBit(c.register8(reg), bit)
			})
		case 2:
			DefineInstructionCB(uint8(opcode), fmt.Sprintf("RES %d,%s", bit, name), func(c *CPU) {
				c.setRegister8(reg, c.resetBit(c.register8(reg), bit))
			})
		case 3:
			DefineInstructionCB(uint8(opcode), fmt.Sprintf("SET %d,%s", bit, name), func(c *CPU) {
				c.setRegister8(reg, c.setBit(c.register8(reg), bit))
			})
		}
	}
}
