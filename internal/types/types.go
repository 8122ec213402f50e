// Package types holds the memory map and register addresses shared by
// the CPU, the bus and the LCD.
package types

// Single bit masks, as used by the hardware registers.
const (
	Bit0 uint8 = 0x01
	Bit1 uint8 = 0x02
	Bit2 uint8 = 0x04
	Bit3 uint8 = 0x08
	Bit4 uint8 = 0x10
	Bit5 uint8 = 0x20
	Bit6 uint8 = 0x40
	Bit7 uint8 = 0x80
)

// Address represents a memory address in the Game Boy's memory,
// which can be read from or written to. The MMU holds one Address
// per location of the 16-bit address space.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the joypad register. Joypad input
	// is not emulated, so the register reads as no buttons pressed.
	P1 HardwareAddress = 0xFF00
	// IF is the address of the interrupt flag register. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCD control register.
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the LCD status register. Its mode
	// and coincidence bits are synthesised on read.
	STAT HardwareAddress = 0xFF41
	// SCY is the background viewport Y position.
	SCY HardwareAddress = 0xFF42
	// SCX is the background viewport X position.
	SCX HardwareAddress = 0xFF43
	// LY is the current scanline, advanced by the LCD. Writes are
	// stored and the LCD carries on counting from them.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the STAT coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer from the page written to it.
	DMA HardwareAddress = 0xFF46
	// BGP is the background palette.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the first object palette.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the second object palette.
	OBP1 HardwareAddress = 0xFF49
	// WY is the window Y position.
	WY HardwareAddress = 0xFF4A
	// WX is the window X position plus 7.
	WX HardwareAddress = 0xFF4B
	// BDIS disables the boot ROM when written with a non-zero value.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)
