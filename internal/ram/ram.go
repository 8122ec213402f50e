// Package ram provides a basic RAM implementation.
package ram

// RAM represents a block of RAM. Addresses are relative
// to the start of the block.
type RAM interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	Size() int
}

type ram struct {
	data []uint8
}

// NewRAM returns a new zeroed RAM of the given size.
func NewRAM(size uint32) RAM {
	return &ram{
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *ram) Read(address uint16) uint8 {
	return r.data[address]
}

// Write writes the value to the given address.
func (r *ram) Write(address uint16, value uint8) {
	r.data[address] = value
}

// Size returns the size of the RAM in bytes.
func (r *ram) Size() int {
	return len(r.data)
}
