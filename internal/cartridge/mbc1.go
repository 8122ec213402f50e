package cartridge

import "fmt"

// MemoryBankedCartridge1 represents a MBC1 cartridge. It supports up to
// 2MB of ROM in 16kB banks and 32kB of RAM in 8kB banks.
type MemoryBankedCartridge1 struct {
	baseCartridge

	rom     []byte
	romBank uint8 // lower 5 bits written to 0x2000-0x3FFF, never 0

	ram        []byte
	ramEnabled bool

	secondary uint8 // 2 bits written to 0x4000-0x5FFF
	ramBanking bool // mode written to 0x6000-0x7FFF
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		baseCartridge: baseCartridge{header: header},
		rom:           rom,
		romBank:       1,
		ram:           make([]byte, header.RAMSize),
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address) // first bank is always fixed
	case address < 0x8000:
		return m.readROM(m.ROMBank(), address-0x4000) // switchable bank
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(address)]
	}

	panic(fmt.Sprintf("mbc1: illegal read from address: %X", address))
}

// Write attempts to switch the ROM or RAM bank, or writes to the
// selected RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x1F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.secondary = value & 0x03
	case address < 0x8000:
		m.ramBanking = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			m.ram[m.ramOffset(address)] = value
		}
	default:
		panic(fmt.Sprintf("mbc1: illegal write to address: %X", address))
	}
}

// ROMBank returns the bank currently mapped to 0x4000-0x7FFF. In ROM banking
// mode the secondary register supplies bits 5-6 of the bank number.
func (m *MemoryBankedCartridge1) ROMBank() uint8 {
	if m.ramBanking {
		return m.romBank
	}
	return m.secondary<<5 | m.romBank
}

// RAMBank returns the RAM bank currently mapped to 0xA000-0xBFFF.
func (m *MemoryBankedCartridge1) RAMBank() uint8 {
	if m.ramBanking {
		return m.secondary
	}
	return 0
}

func (m *MemoryBankedCartridge1) readROM(bank uint8, offset uint16) uint8 {
	banks := len(m.rom) / 0x4000
	if banks == 0 {
		return 0xFF
	}
	return m.rom[(int(bank)%banks)*0x4000+int(offset)]
}

func (m *MemoryBankedCartridge1) ramOffset(address uint16) int {
	return (int(m.RAMBank())*0x2000 + int(address-0xA000)) % len(m.ram)
}

// Save returns the RAM of the cartridge.
func (m *MemoryBankedCartridge1) Save() []byte {
	return m.ram
}

// Load loads the RAM of the cartridge.
func (m *MemoryBankedCartridge1) Load(data []byte) {
	copy(m.ram, data)
}

// Battery is implemented by cartridges whose RAM is battery backed and
// should be persisted between runs.
type Battery interface {
	Save() []byte
	Load(data []byte)
}

var _ Battery = (*MemoryBankedCartridge1)(nil)
