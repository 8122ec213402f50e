package cpu

import "testing"

func TestInstruction_Jump(t *testing.T) {
	// 0xC3 - JP a16
	testInstruction(t, "JP a16", 0xC3, func(t *testing.T, _ Instruction) {
		load(0xC3, 0x00, 0x20)
		if cycles := step(t); cycles != 16 {
			t.Errorf("expected 16 cycles, got %d", cycles)
		}
		if cpu.PC() != 0x2000 {
			t.Errorf("expected PC to be 0x2000, got 0x%04X", cpu.PC())
		}
	})
	// 0xE9 - JP (HL)
	testInstruction(t, "JP (HL)", 0xE9, func(t *testing.T, _ Instruction) {
		cpu.hl = 0x1234
		load(0xE9)
		step(t)

		if cpu.PC() != 0x1234 {
			t.Errorf("expected PC to be HL, got 0x%04X", cpu.PC())
		}
	})
	// 0x18 - JR r8
	testInstruction(t, "JR r8", 0x18, func(t *testing.T, _ Instruction) {
		load(0x18, 0x05)
		step(t)
		if cpu.PC() != 0x0107 {
			t.Errorf("expected PC to be 0x0107, got 0x%04X", cpu.PC())
		}

		load(0x18, 0xFE)
		step(t)
		if cpu.PC() != 0x0107 {
			t.Errorf("expected JR -2 to loop on itself, got 0x%04X", cpu.PC())
		}
	})
	// 0x20 - JR NZ,r8
	testInstruction(t, "JR NZ,r8", 0x20, func(t *testing.T, _ Instruction) {
		cpu.SetFlagZ(true)
		load(0x20, 0x10)
		step(t)
		if cpu.PC() != 0x0102 {
			t.Errorf("expected branch not to be taken, PC is 0x%04X", cpu.PC())
		}
	})
}

func TestInstruction_CallReturn(t *testing.T) {
	// 0xCD - CALL a16, 0xC9 - RET
	testInstruction(t, "CALL a16", 0xCD, func(t *testing.T, _ Instruction) {
		load(0xCD, 0x34, 0x12)
		step(t)

		if cpu.PC() != 0x1234 {
			t.Errorf("expected PC to be 0x1234, got 0x%04X", cpu.PC())
		}
		if cpu.SP() != 0xFFFC {
			t.Errorf("expected SP to be 0xFFFC, got 0x%04X", cpu.SP())
		}
		if bus.memory[0xFFFC] != 0x03 || bus.memory[0xFFFD] != 0x01 {
			t.Errorf("expected return address 0x0103 on the stack, got 0x%02X%02X", bus.memory[0xFFFD], bus.memory[0xFFFC])
		}

		load(0xC9)
		if cycles := step(t); cycles != 16 {
			t.Errorf("expected RET to take 16 cycles, got %d", cycles)
		}
		if cpu.PC() != 0x0103 || cpu.SP() != 0xFFFE {
			t.Errorf("expected RET to PC=0x0103 SP=0xFFFE, got PC=0x%04X SP=0x%04X", cpu.PC(), cpu.SP())
		}
	})
	// 0xCC - CALL Z,a16
	testInstruction(t, "CALL Z,a16", 0xCC, func(t *testing.T, _ Instruction) {
		cpu.SetFlagZ(false)
		load(0xCC, 0x34, 0x12)
		step(t)

		if cpu.PC() != 0x0103 || cpu.SP() != 0xFFFE {
			t.Errorf("expected call not to be taken, got PC=0x%04X SP=0x%04X", cpu.PC(), cpu.SP())
		}
	})
	// 0xD0 - RET NC
	testInstruction(t, "RET NC", 0xD0, func(t *testing.T, _ Instruction) {
		cpu.sp = 0xFFFC
		bus.memory[0xFFFC], bus.memory[0xFFFD] = 0x00, 0x40
		cpu.SetFlagC(false)
		load(0xD0)
		step(t)

		if cpu.PC() != 0x4000 {
			t.Errorf("expected PC to be 0x4000, got 0x%04X", cpu.PC())
		}
	})
	// 0xD9 - RETI
	testInstruction(t, "RETI", 0xD9, func(t *testing.T, _ Instruction) {
		cpu.sp = 0xFFFC
		bus.memory[0xFFFC], bus.memory[0xFFFD] = 0x50, 0x01
		load(0xD9)
		step(t)

		if cpu.PC() != 0x0150 {
			t.Errorf("expected PC to be 0x0150, got 0x%04X", cpu.PC())
		}
		if !cpu.IRQ.IME {
			t.Errorf("expected RETI to set IME")
		}
	})
}

func TestInstruction_Restart(t *testing.T) {
	for i := uint8(0); i < 8; i++ {
		reset()
		opcode := 0xC7 | i<<3
		load(opcode)

		if cycles := step(t); cycles != 16 {
			t.Errorf("expected RST to take 16 cycles, got %d", cycles)
		}
		if cpu.PC() != uint16(opcode&0x38) {
			t.Errorf("expected 0x%02X to jump to 0x%04X, got 0x%04X", opcode, opcode&0x38, cpu.PC())
		}
		if cpu.SP() != 0xFFFC || bus.memory[0xFFFC] != 0x01 || bus.memory[0xFFFD] != 0x01 {
			t.Errorf("expected return address 0x0101 on the stack")
		}
	}
}

func TestInstruction_Stack(t *testing.T) {
	// 0xC5 - PUSH BC, 0xC1 - POP BC
	testInstruction(t, "PUSH BC", 0xC5, func(t *testing.T, _ Instruction) {
		cpu.bc = 0x1234
		load(0xC5, 0xC1)
		step(t)

		if cpu.SP() != 0xFFFC {
			t.Errorf("expected SP to be 0xFFFC, got 0x%04X", cpu.SP())
		}
		if bus.memory[0xFFFC] != 0x34 || bus.memory[0xFFFD] != 0x12 {
			t.Errorf("expected BC to be pushed little-endian")
		}

		cpu.bc = 0
		step(t)
		if cpu.BC() != 0x1234 || cpu.SP() != 0xFFFE {
			t.Errorf("expected POP to restore BC=0x1234 SP=0xFFFE, got BC=0x%04X SP=0x%04X", cpu.BC(), cpu.SP())
		}
	})
	// 0xF1 - POP AF
	testInstruction(t, "POP AF", 0xF1, func(t *testing.T, _ Instruction) {
		cpu.sp = 0xFFFC
		bus.memory[0xFFFC], bus.memory[0xFFFD] = 0xFF, 0x12
		load(0xF1)
		step(t)

		if cpu.AF() != 0x12F0 {
			t.Errorf("expected AF to be 0x12F0, got 0x%04X", cpu.AF())
		}
	})
}
