package cartridge

// ROMCartridge is a cartridge without a memory bank controller.
// It holds up to 32kB of ROM and optionally 8kB of RAM.
type ROMCartridge struct {
	baseCartridge
	rom []byte
	ram []byte
}

// NewROM returns a new ROMCartridge.
func NewROM(rom []byte, header Header) *ROMCartridge {
	return &ROMCartridge{
		baseCartridge: baseCartridge{header: header},
		rom:           rom,
		ram:           make([]byte, header.RAMSize),
	}
}

func (r *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if int(address) < len(r.rom) {
			return r.rom[address]
		}
	case address >= 0xA000 && address < 0xC000:
		if offset := int(address - 0xA000); offset < len(r.ram) {
			return r.ram[offset]
		}
	}
	return 0xFF
}

// Write ignores ROM writes and stores RAM writes if the cartridge has RAM.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		if offset := int(address - 0xA000); offset < len(r.ram) {
			r.ram[offset] = value
		}
	}
}

// Save returns the RAM of the cartridge.
func (r *ROMCartridge) Save() []byte {
	return r.ram
}

// Load loads the RAM of the cartridge.
func (r *ROMCartridge) Load(data []byte) {
	copy(r.ram, data)
}

var _ Battery = (*ROMCartridge)(nil)
