// Package boot loads the 256 byte boot ROM that a DMG maps over the
// start of the cartridge when it powers on.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the size of the DMG boot ROM.
const Size = 256

// MD5 checksums of the known 256 byte boot ROMs.
const (
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG  = "32fbbd84168d3482956eb3c5051637f5"
	MGB  = "71a378e71ff30b2d8a1f02bf5c7896aa"
	SGB  = "d574d4f9c12f305074798f54c091a8b4"
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)

var models = map[string]string{
	DMG0: "DMG0",
	DMG:  "DMG",
	MGB:  "MGB",
	SGB:  "SGB",
	SGB2: "SGB2",
}

// ROM is a boot ROM. The MMU serves reads of 0x0000-0x00FF from it
// until the program writes a non-zero value to types.BDIS.
type ROM struct {
	raw      []byte
	checksum string
}

// LoadBootROM returns the ROM for b, which must be exactly Size bytes.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("boot: invalid boot rom length: %d", len(b))
	}

	sum := md5.Sum(b)
	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at addr, which must be below Size.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model names the hardware the boot ROM was dumped from, or returns
// "unknown" for a modified or homebrew boot ROM.
func (b *ROM) Model() string {
	if m, ok := models[b.Checksum()]; ok {
		return m
	}
	return "unknown"
}
