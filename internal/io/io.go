// Package io provides the IO register block of the Game Boy,
// mapped to 0xFF00-0xFF7F.
package io

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// IOBus is a device mapped into the IO block.
type IOBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// IO routes the LCD registers (0xFF40-0xFF4B) to the LCD and IF to
// the interrupt service. Every other register is backed by plain
// storage, as sound, serial, the timer and the joypad are not
// emulated.
type IO struct {
	video      IOBus
	interrupts *interrupts.Service

	registers [0x80]uint8
}

// New returns a new IO block delegating to the given LCD.
func New(video IOBus, irq *interrupts.Service) *IO {
	return &IO{
		video:      video,
		interrupts: irq,
	}
}

func (i *IO) Read(addr uint16) uint8 {
	switch {
	case addr >= types.LCDC && addr <= types.WX:
		return i.video.Read(addr)
	case addr == types.IF:
		return i.interrupts.ReadFlag()
	case addr == types.P1:
		// no buttons are ever pressed
		return 0xC0 | i.registers[0] | 0x0F
	case addr >= 0xFF00 && addr <= 0xFF7F:
		return i.registers[addr-0xFF00]
	}

	panic(fmt.Sprintf("io: illegal read from address 0x%04X", addr))
}

func (i *IO) Write(addr uint16, value uint8) {
	switch {
	case addr >= types.LCDC && addr <= types.WX:
		i.video.Write(addr, value)
	case addr == types.IF:
		i.interrupts.WriteFlag(value)
	case addr == types.P1:
		// only the button group select bits are writable
		i.registers[0] = value & 0x30
	case addr >= 0xFF00 && addr <= 0xFF7F:
		i.registers[addr-0xFF00] = value
	default:
		panic(fmt.Sprintf("io: illegal write to address 0x%04X", addr))
	}
}
