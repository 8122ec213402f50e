package cpu

import "fmt"

// instructionCycles holds the cycles taken by each instruction in the
// InstructionSet. Conditional instructions hold their not-taken cost,
// and undefined opcodes hold 0.
var instructionCycles = [256]uint8{
	4, 12, 8, 8, 4, 4, 8, 4, 20, 8, 8, 8, 4, 4, 8, 4, // 0x00
	4, 12, 8, 8, 4, 4, 8, 4, 12, 8, 8, 8, 4, 4, 8, 4, // 0x10
	8, 12, 8, 8, 4, 4, 8, 4, 8, 8, 8, 8, 4, 4, 8, 4, // 0x20
	8, 12, 8, 8, 12, 12, 12, 4, 8, 8, 8, 8, 4, 4, 8, 4, // 0x30
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x40
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x50
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x60
	8, 8, 8, 8, 8, 8, 4, 8, 4, 4, 4, 4, 4, 4, 8, 4, // 0x70
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x80
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0x90
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0xA0
	4, 4, 4, 4, 4, 4, 8, 4, 4, 4, 4, 4, 4, 4, 8, 4, // 0xB0
	8, 12, 12, 16, 12, 16, 8, 16, 8, 16, 12, 4, 12, 24, 8, 16, // 0xC0
	8, 12, 12, 0, 12, 16, 8, 16, 8, 16, 12, 0, 12, 0, 8, 16, // 0xD0
	12, 12, 8, 0, 0, 16, 8, 16, 16, 4, 16, 0, 0, 0, 8, 16, // 0xE0
	12, 12, 8, 4, 0, 16, 8, 16, 12, 8, 16, 4, 0, 0, 8, 16, // 0xF0
}

// illegalOpcodes are the opcodes the SM83 leaves undefined.
var illegalOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.readOperand()
		c.mode = ModeStop
	})
	InstructionSet[0x10].Length = 2
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IRQ.IME = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.IRQ.IME = true
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {})

	// 0x27 - 0x3F: accumulator and flag operations
	DefineInstruction(0x27, "DAA", (*CPU).decimalAdjust)
	DefineInstruction(0x2F, "CPL", (*CPU).complement)
	DefineInstruction(0x37, "SCF", (*CPU).setCarryFlag)
	DefineInstruction(0x3F, "CCF", (*CPU).complementCarryFlag)

	DefineInstruction(0x07, "RLCA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeftCarry) })
	DefineInstruction(0x0F, "RRCA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateRightCarry) })
	DefineInstruction(0x17, "RLA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateLeft) })
	DefineInstruction(0x1F, "RRA", func(c *CPU) { c.rotateAccumulator((*CPU).rotateRight) })

	// 16-bit loads and arithmetic, register pair in bits 5-4
	for i := uint8(0); i < 4; i++ {
		pair := i
		DefineInstruction(0x01|pair<<4, "LD "+registerPairNames[pair]+",d16", func(c *CPU) {
			c.setRegisterPair(pair, c.readOperand16())
		})
		DefineInstruction(0x03|pair<<4, "INC "+registerPairNames[pair], func(c *CPU) {
			c.setRegisterPair(pair, c.registerPair(pair)+1)
		})
		DefineInstruction(0x0B|pair<<4, "DEC "+registerPairNames[pair], func(c *CPU) {
			c.setRegisterPair(pair, c.registerPair(pair)-1)
		})
		DefineInstruction(0x09|pair<<4, "ADD HL,"+registerPairNames[pair], func(c *CPU) {
			c.addHL(c.registerPair(pair))
		})

		DefineInstruction(0xC5|pair<<4, "PUSH "+stackPairNames[pair], func(c *CPU) {
			if pair == 3 {
				c.pushStack(c.AF())
				return
			}
			c.pushStack(c.registerPair(pair))
		})
		DefineInstruction(0xC1|pair<<4, "POP "+stackPairNames[pair], func(c *CPU) {
			if pair == 3 {
				c.SetAF(c.popStack())
				return
			}
			c.setRegisterPair(pair, c.popStack())
		})
	}
	DefineInstruction(0x08, "LD (a16),SP", (*CPU).storeStackPointer)
	DefineInstruction(0xE8, "ADD SP,s8", func(c *CPU) {
		c.sp = c.addSPSigned(c.readOperand())
	})
	DefineInstruction(0xF8, "LD HL,SP+s8", func(c *CPU) {
		c.hl = c.addSPSigned(c.readOperand())
	})
	DefineInstruction(0xF9, "LD SP,HL", func(c *CPU) {
		c.sp = c.hl
	})

	// indirect loads through BC, DE and HL
	DefineInstruction(0x02, "LD (BC),A", func(c *CPU) { c.bus.Write(c.bc, c.A()) })
	DefineInstruction(0x12, "LD (DE),A", func(c *CPU) { c.bus.Write(c.de, c.A()) })
	DefineInstruction(0x22, "LD (HL+),A", func(c *CPU) { c.storeIndirectHL(1) })
	DefineInstruction(0x32, "LD (HL-),A", func(c *CPU) { c.storeIndirectHL(-1) })
	DefineInstruction(0x0A, "LD A,(BC)", func(c *CPU) { c.SetA(c.bus.Read(c.bc)) })
	DefineInstruction(0x1A, "LD A,(DE)", func(c *CPU) { c.SetA(c.bus.Read(c.de)) })
	DefineInstruction(0x2A, "LD A,(HL+)", func(c *CPU) { c.loadIndirectHL(1) })
	DefineInstruction(0x3A, "LD A,(HL-)", func(c *CPU) { c.loadIndirectHL(-1) })

	// high RAM and absolute loads
	DefineInstruction(0xE0, "LDH (a8),A", func(c *CPU) { c.storeHigh(c.readOperand()) })
	DefineInstruction(0xF0, "LDH A,(a8)", func(c *CPU) { c.loadHigh(c.readOperand()) })
	DefineInstruction(0xE2, "LD (C),A", func(c *CPU) { c.storeHigh(c.C()) })
	DefineInstruction(0xF2, "LD A,(C)", func(c *CPU) { c.loadHigh(c.C()) })
	DefineInstruction(0xEA, "LD (a16),A", func(c *CPU) { c.bus.Write(c.readOperand16(), c.A()) })
	DefineInstruction(0xFA, "LD A,(a16)", func(c *CPU) { c.SetA(c.bus.Read(c.readOperand16())) })

	// 8-bit INC, DEC and LD r,d8, register in bits 5-3
	for i := uint8(0); i < 8; i++ {
		reg := i
		DefineInstruction(0x04|reg<<3, "INC "+registerNames[reg], func(c *CPU) {
			c.setRegister8(reg, c.increment(c.register8(reg)))
		})
		DefineInstruction(0x05|reg<<3, "DEC "+registerNames[reg], func(c *CPU) {
			c.setRegister8(reg, c.decrement(c.register8(reg)))
		})
		DefineInstruction(0x06|reg<<3, "LD "+registerNames[reg]+",d8", func(c *CPU) {
			c.setRegister8(reg, c.readOperand())
		})
	}

	// 0x40 - 0x7F: LD r,r', destination in bits 5-3, source in bits 2-0
	for opcode := 0x40; opcode < 0x80; opcode++ {
		if opcode == 0x76 {
			continue // HALT
		}
		dst, src := uint8(opcode>>3)&7, uint8(opcode)&7
		DefineInstruction(uint8(opcode), "LD "+registerNames[dst]+","+registerNames[src], func(c *CPU) {
			c.loadRegister8(dst, src)
		})
	}

	// 0x80 - 0xBF: 8-bit arithmetic on A, operation in bits 5-3, operand in bits 2-0
	for opcode := 0x80; opcode < 0xC0; opcode++ {
		op, src := aluOperations[(opcode>>3)&7], uint8(opcode)&7
		DefineInstruction(uint8(opcode), op.name+registerNames[src], func(c *CPU) {
			op.fn(c, c.register8(src))
		})
	}
	for i := uint8(0); i < 8; i++ {
		op := aluOperations[i]
		DefineInstruction(0xC6|i<<3, op.name+"d8", func(c *CPU) {
			op.fn(c, c.readOperand())
		})
	}

	// jumps, calls and returns
	DefineInstruction(0x18, "JR r8", func(c *CPU) { c.jumpRelative(c.readOperand()) })
	DefineInstruction(0xC3, "JP a16", func(c *CPU) { c.jump(c.readOperand16()) })
	DefineInstruction(0xE9, "JP (HL)", func(c *CPU) { c.jump(c.hl) })
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) { c.call(c.readOperand16()) })
	DefineInstruction(0xC9, "RET", (*CPU).ret)
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.IRQ.IME = true
	})
	for i := uint8(0); i < 4; i++ {
		cond := condition(i)
		DefineBranch(0x20|i<<3, "JR "+conditionNames[i]+",r8", 12, func(c *CPU) bool {
			return c.jumpRelativeConditional(cond)
		})
		DefineBranch(0xC2|i<<3, "JP "+conditionNames[i]+",a16", 16, func(c *CPU) bool {
			return c.jumpConditional(cond)
		})
		DefineBranch(0xC4|i<<3, "CALL "+conditionNames[i]+",a16", 24, func(c *CPU) bool {
			return c.callConditional(cond)
		})
		DefineBranch(0xC0|i<<3, "RET "+conditionNames[i], 20, func(c *CPU) bool {
			return c.retConditional(cond)
		})
	}
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) << 3
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.restart(vector)
		})
	}

	for _, opcode := range illegalOpcodes {
		defineIllegal(opcode)
	}
}
