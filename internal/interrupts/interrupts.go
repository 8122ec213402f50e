// Package interrupts holds the interrupt request and enable
// registers shared between the CPU and the peripherals.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode.
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4).
	JoypadFlag = types.Bit4
)

// Service is the interrupt service, used to request
// interrupts and to query whether any are pending.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. A requested and enabled interrupt wakes the CPU
// from HALT and STOP. Interrupts are never vectored, the
// IME is tracked so that EI, DI and RETI are observable.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
	IME    bool
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// ReadFlag returns IF, the upper 3 bits are always set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag sets IF, only the first 5 bits are used.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & 0x1F
}
