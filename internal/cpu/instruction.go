package cpu

import (
	"fmt"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/mmu"
)

// Branch reports whether a conditional instruction took its branch,
// which selects the cycle cost reported by Step.
type Branch uint8

const (
	// NoBranch is returned by every unconditional instruction.
	NoBranch Branch = iota
	// BranchTaken is returned when the condition of JP/JR/CALL/RET held.
	BranchTaken
	// BranchNotTaken is returned when the condition did not hold.
	BranchNotTaken
)

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	Opcode uint8
	Name   string // mnemonic, operands named d8, d16, a8, a16, r8 (jump target) or s8 (signed)
	Length uint8  // length in bytes, including the opcode
	Cycles uint8  // cycles taken, or the not-taken cost for branches
	Taken  uint8  // cycles taken when a branch is taken

	fn func(*CPU) (Branch, error)
}

// Execute runs the instruction's handler against c, without touching
// PC or reporting cycles.
func (i Instruction) Execute(c *CPU) (Branch, error) {
	return i.fn(c)
}

var (
	// InstructionSet holds the first 256 instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines an unconditional instruction in the
// InstructionSet, with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		Opcode: opcode,
		Name:   name,
		Length: operandLength(name) + 1,
		Cycles: instructionCycles[opcode],
		fn: func(c *CPU) (Branch, error) {
			fn(c)
			return NoBranch, nil
		},
	}
}

// DefineBranch defines a conditional instruction in the InstructionSet.
// fn returns whether the branch was taken, in which case the
// instruction costs taken cycles.
func DefineBranch(opcode uint8, name string, taken uint8, fn func(*CPU) bool) {
	InstructionSet[opcode] = Instruction{
		Opcode: opcode,
		Name:   name,
		Length: operandLength(name) + 1,
		Cycles: instructionCycles[opcode],
		Taken:  taken,
		fn: func(c *CPU) (Branch, error) {
			if fn(c) {
				return BranchTaken, nil
			}
			return BranchNotTaken, nil
		},
	}
}

// DefineInstructionCB defines an instruction in the InstructionSetCB.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	cycles := uint8(8)
	if opcode&0x07 == 6 {
		cycles = 16
		if opcode >= 0x40 && opcode < 0x80 {
			cycles = 12
		}
	}

	InstructionSetCB[opcode] = Instruction{
		Opcode: opcode,
		Name:   name,
		Length: 2,
		Cycles: cycles,
		fn: func(c *CPU) (Branch, error) {
			fn(c)
			return NoBranch, nil
		},
	}
}

// defineIllegal defines an opcode that has no instruction.
func defineIllegal(opcode uint8) {
	InstructionSet[opcode] = Instruction{
		Opcode: opcode,
		Name:   fmt.Sprintf("ILLEGAL_%02X", opcode),
		Length: 1,
		fn: func(c *CPU) (Branch, error) {
			return NoBranch, &IllegalInstructionError{Opcode: opcode, PC: c.pc}
		},
	}
}

func operandLength(name string) uint8 {
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		return 2
	case strings.Contains(name, "d8"), strings.Contains(name, "a8"),
		strings.Contains(name, "r8"), strings.Contains(name, "s8"):
		return 1
	}
	return 0
}

// Disassemble returns the mnemonic of the instruction at pc, with its
// operands read from bus, and the address of the following instruction.
func Disassemble(bus mmu.Bus, pc uint16) (string, uint16) {
	opcode := bus.Read(pc)
	if opcode == 0xCB {
		return InstructionSetCB[bus.Read(pc+1)].Name, pc + 2
	}

	instruction := InstructionSet[opcode]
	next := pc + uint16(instruction.Length)
	name := instruction.Name
	switch {
	case strings.Contains(name, "d16"):
		name = strings.Replace(name, "d16", fmt.Sprintf("$%04X", mmu.Read16(bus, pc+1)), 1)
	case strings.Contains(name, "a16"):
		name = strings.Replace(name, "a16", fmt.Sprintf("$%04X", mmu.Read16(bus, pc+1)), 1)
	case strings.Contains(name, "d8"):
		name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", bus.Read(pc+1)), 1)
	case strings.Contains(name, "a8"):
		name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", bus.Read(pc+1)), 1)
	case strings.Contains(name, "s8"):
		name = strings.Replace(name, "s8", fmt.Sprintf("%+d", int8(bus.Read(pc+1))), 1)
	case strings.Contains(name, "r8"):
		target := next + uint16(int8(bus.Read(pc+1)))
		name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", target), 1)
	}

	return name, next
}
