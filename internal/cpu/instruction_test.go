package cpu

import (
	"strings"
	"testing"
)

func TestInstructionSet_Complete(t *testing.T) {
	illegal := map[uint8]bool{}
	for _, opcode := range illegalOpcodes {
		illegal[opcode] = true
	}

	for i := 0; i < 256; i++ {
		instruction := InstructionSet[i]
		if instruction.fn == nil {
			t.Errorf("opcode 0x%02X has no handler", i)
			continue
		}
		if int(instruction.Opcode) != i {
			t.Errorf("opcode 0x%02X is defined as 0x%02X", i, instruction.Opcode)
		}
		if illegal[uint8(i)] {
			if !strings.HasPrefix(instruction.Name, "ILLEGAL") {
				t.Errorf("expected opcode 0x%02X to be illegal, got %s", i, instruction.Name)
			}
			continue
		}
		if instruction.Cycles == 0 {
			t.Errorf("%s (0x%02X) takes no cycles", instruction.Name, i)
		}

		if InstructionSetCB[i].fn == nil || InstructionSetCB[i].Cycles == 0 {
			t.Errorf("CB opcode 0x%02X is not defined", i)
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		program  []uint8
		expected string
		length   uint16
	}{
		{[]uint8{0x00}, "NOP", 1},
		{[]uint8{0x01, 0x34, 0x12}, "LD BC,$1234", 3},
		{[]uint8{0x3E, 0x10}, "LD A,$10", 2},
		{[]uint8{0xE0, 0x80}, "LDH ($FF80),A", 2},
		{[]uint8{0x20, 0xFE}, "JR NZ,$0100", 2},
		{[]uint8{0xE8, 0xFF}, "ADD SP,-1", 2},
		{[]uint8{0xCD, 0x00, 0x40}, "CALL $4000", 3},
		{[]uint8{0xCB, 0x7C}, "BIT 7,H", 2},
		{[]uint8{0x10, 0x00}, "STOP", 2},
		{[]uint8{0xD3}, "ILLEGAL_D3", 1},
	}

	for _, tt := range tests {
		b := &testBus{}
		copy(b.memory[0x0100:], tt.program)

		name, next := Disassemble(b, 0x0100)
		if name != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, name)
		}
		if next != 0x0100+tt.length {
			t.Errorf("%s: expected next instruction at 0x%04X, got 0x%04X", tt.expected, 0x0100+tt.length, next)
		}
	}
}
