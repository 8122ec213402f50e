package mmu

// Bus is implemented by every device that can be addressed with
// 16-bit addresses.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// WideBus is implemented by devices with a native 16-bit store.
// Read16 and Write16 defer to it when available.
type WideBus interface {
	Bus
	Read16(address uint16) uint16
	Write16(address uint16, value uint16)
}

// Read16 reads a little-endian 16-bit value from b, the low byte
// being at address.
func Read16(b Bus, address uint16) uint16 {
	if w, ok := b.(WideBus); ok {
		return w.Read16(address)
	}
	return uint16(b.Read(address)) | uint16(b.Read(address+1))<<8
}

// Write16 writes a little-endian 16-bit value to b, the low byte
// being written to address.
func Write16(b Bus, address uint16, value uint16) {
	if w, ok := b.(WideBus); ok {
		w.Write16(address, value)
		return
	}
	b.Write(address, uint8(value))
	b.Write(address+1, uint8(value>>8))
}
