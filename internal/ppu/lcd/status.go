package lcd

import (
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Status represents the LCD status register (0xFF41). Only the
// interrupt enable bits are stored, the mode and coincidence bits
// are synthesised from the current state on read:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see below) (Read Only)
//		0: During H-Blank
//		1: During V-Blank
//		2: During Searching OAM-RAM
//		3: During Transferring Data to LCD Driver
type Status struct {
	enables uint8
}

// Write stores the interrupt enable bits, the read only bits
// are ignored.
func (s *Status) Write(value uint8) {
	s.enables = value & 0x78
}

// Read synthesises the register from the given mode and the
// coincidence of LY and LYC. Bit 7 is unused and reads 1.
func (s *Status) Read(mode Mode, coincidence bool) uint8 {
	v := 0x80 | s.enables | uint8(mode)&0x03
	return bits.SetTo(v, 2, coincidence)
}
