package cartridge

import (
	"bytes"
	"fmt"
	"strings"
)

var (
	// ramMAP maps the RAM size byte (0x0149) to a size in bytes.
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x01: 2 * 1024,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
	}

	// logo is the bitmap every licensed cartridge carries at 0x0104-0x0133.
	logo = [48]byte{
		0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
		0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
		0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
	}
)

// Type is the cartridge type byte found at 0x0147.
type Type uint8

const (
	ROM         Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
	ROMRAM      Type = 0x08
	ROMRAMBATT  Type = 0x09
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1RAMBATT:
		return "MBC1+RAM+BATTERY"
	case ROMRAM:
		return "ROM+RAM"
	case ROMRAMBATT:
		return "ROM+RAM+BATTERY"
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0104-0x0133 - Logo bitmap, checked by the boot ROM
	Logo [48]byte
	// 0x0134-0x0143 - Title of the game
	Title         string
	CartridgeType Type
	// ROMSize is calculated by 32kB x (1 << n)
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16

	// checksum is the header checksum computed over 0x0134-0x014C
	checksum uint8
}

// parseHeader parses the header of the given ROM and returns a Header.
func parseHeader(rom []byte) (Header, error) {
	h := Header{}
	if len(rom) < 0x150 {
		return h, fmt.Errorf("rom too small to contain a header: %d bytes", len(rom))
	}

	copy(h.Logo[:], rom[0x104:0x134])

	h.Title = strings.TrimRight(string(rom[0x134:0x144]), "\x00 ")
	h.CartridgeType = Type(rom[0x147])
	h.ROMSize = (32 * 1024) * (1 << rom[0x148])

	size, ok := ramMAP[rom[0x149]]
	if !ok {
		return h, fmt.Errorf("unsupported ram size byte 0x%02X", rom[0x149])
	}
	h.RAMSize = size

	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E])<<8 | uint16(rom[0x14F])

	for _, b := range rom[0x134:0x14D] {
		h.checksum = h.checksum - b - 1
	}

	return h, nil
}

// ValidLogo reports whether the logo matches the one checked by the boot ROM.
func (h *Header) ValidLogo() bool {
	return bytes.Equal(h.Logo[:], logo[:])
}

// ValidChecksum reports whether the header checksum matches the header contents.
func (h *Header) ValidChecksum() bool {
	return h.checksum == h.HeaderChecksum
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
