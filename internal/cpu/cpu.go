package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304
)

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is the halt CPU mode.
	ModeHalt
	// ModeStop is the stop CPU mode.
	ModeStop
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus mmu.Bus
	IRQ *interrupts.Service

	mode mode
	log  log.Logger
}

// NewCPU creates a new CPU with its registers set to the values left
// by the boot ROM. All memory accesses go through bus.
func NewCPU(bus mmu.Bus, irq *interrupts.Service, logger log.Logger) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		bus:       bus,
		IRQ:       irq,
		log:       logger,
	}
}

// Bus returns the bus the CPU executes from.
func (c *CPU) Bus() mmu.Bus {
	return c.bus
}

// Halted returns true if the CPU is waiting for an interrupt in
// either HALT or STOP mode.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// Step executes a single instruction and returns the number of
// cycles it took. While halted no instruction is fetched and 4
// cycles pass, until an interrupt is pending. An undefined opcode
// returns an *IllegalInstructionError and leaves PC pointing at it.
func (c *CPU) Step() (uint8, error) {
	if c.mode != ModeNormal {
		if !c.IRQ.HasInterrupts() {
			return 4, nil
		}
		c.mode = ModeNormal
	}

	opcode := c.bus.Read(c.pc)
	instruction := InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	}

	branch, err := instruction.fn(c)
	if err != nil {
		c.log.Debugf("%v with %s", err, c.Registers.String())
		return 0, err
	}
	c.pc++

	if branch == BranchTaken {
		return instruction.Taken, nil
	}
	return instruction.Cycles, nil
}

// readOperand advances PC onto the next operand byte and reads it.
func (c *CPU) readOperand() uint8 {
	c.pc++
	return c.bus.Read(c.pc)
}

// readOperand16 reads the next two operand bytes as a little-endian
// 16-bit value.
func (c *CPU) readOperand16() uint16 {
	value := mmu.Read16(c.bus, c.pc+1)
	c.pc += 2
	return value
}

// jump positions PC so that the increment following every instruction
// lands on address.
func (c *CPU) jump(address uint16) {
	c.pc = address - 1
}

// nextPC returns the address of the instruction following the one
// currently executing, once its operands have been read.
func (c *CPU) nextPC() uint16 {
	return c.pc + 1
}

// register8 returns the value of the register with the given index,
// in the order B, C, D, E, H, L, (HL), A.
func (c *CPU) register8(index uint8) uint8 {
	switch index {
	case 0:
		return c.B()
	case 1:
		return c.C()
	case 2:
		return c.D()
	case 3:
		return c.E()
	case 4:
		return c.H()
	case 5:
		return c.L()
	case 6:
		return c.bus.Read(c.hl)
	case 7:
		return c.A()
	}
	panic(fmt.Sprintf("invalid register index: %d", index))
}

// setRegister8 sets the register with the given index, in the order
// B, C, D, E, H, L, (HL), A.
func (c *CPU) setRegister8(index uint8, value uint8) {
	switch index {
	case 0:
		c.SetB(value)
	case 1:
		c.SetC(value)
	case 2:
		c.SetD(value)
	case 3:
		c.SetE(value)
	case 4:
		c.SetH(value)
	case 5:
		c.SetL(value)
	case 6:
		c.bus.Write(c.hl, value)
	case 7:
		c.SetA(value)
	default:
		panic(fmt.Sprintf("invalid register index: %d", index))
	}
}

// registerPair returns the register pair with the given index, in the
// order BC, DE, HL, SP.
func (c *CPU) registerPair(index uint8) uint16 {
	switch index {
	case 0:
		return c.bc
	case 1:
		return c.de
	case 2:
		return c.hl
	case 3:
		return c.sp
	}
	panic(fmt.Sprintf("invalid register pair index: %d", index))
}

// setRegisterPair sets the register pair with the given index, in the
// order BC, DE, HL, SP.
func (c *CPU) setRegisterPair(index uint8, value uint16) {
	switch index {
	case 0:
		c.bc = value
	case 1:
		c.de = value
	case 2:
		c.hl = value
	case 3:
		c.sp = value
	default:
		panic(fmt.Sprintf("invalid register pair index: %d", index))
	}
}

var (
	registerNames     = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	registerPairNames = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames    = [4]string{"BC", "DE", "HL", "AF"}
)
