package cpu

import "fmt"

// IllegalInstructionError is returned by Step when the CPU fetches
// one of the 11 opcodes the SM83 leaves undefined. PC is left at the
// faulting opcode.
type IllegalInstructionError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction 0x%02X at 0x%04X", e.Opcode, e.PC)
}
