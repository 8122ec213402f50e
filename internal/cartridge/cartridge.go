// Package cartridge provides the Cartridge interface for the DMG. The
// cartridge holds the game ROM and any external RAM, and is mapped to
// 0x0000-0x7FFF and 0xA000-0xBFFF of the address space.
package cartridge

import "fmt"

// Cartridge represents a basic game cartridge.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
	Title() string
}

type baseCartridge struct {
	header Header
}

func (c *baseCartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *baseCartridge) Title() string {
	return c.header.Title
}

// New parses the header of rom and returns the Cartridge
// implementation for its type.
func New(rom []byte) (Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, fmt.Errorf("cartridge: %w", err)
	}

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROM(rom, header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, header), nil
	}

	return nil, fmt.Errorf("cartridge: unsupported cartridge type %s", header.CartridgeType)
}

