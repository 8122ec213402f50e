package ppu

// Tile represents a tile. Each tile has a size of 8x8 pixels and a color
// depth of 4 colors/gray shades.
type Tile [8][8]uint8

// NewTile decodes the 16 bytes of a tile as stored in VRAM.
func NewTile(b [16]uint8) Tile {
	t := Tile{}
	for tileY := 0; tileY < 8; tileY++ {
		lo, hi := b[tileY*2], b[tileY*2+1]
		for tileX := uint8(0); tileX < 8; tileX++ {
			t[tileY][tileX] = decodePixel(lo, hi, tileX)
		}
	}

	return t
}

// decodePixel returns the colour number of pixel x (0 being the
// leftmost) from the two bit planes of a tile row.
func decodePixel(lo, hi, x uint8) uint8 {
	return (lo>>(7-x))&1 | ((hi>>(7-x))&1)<<1
}

// TileAt returns the decoded tile with the given index in the
// current tile pattern table. Used by the debugger to inspect VRAM.
func (p *PPU) TileAt(index uint8) Tile {
	var b [16]uint8
	addr := p.tileAddress(index) - 0x8000
	copy(b[:], p.vram[addr:addr+16])
	return NewTile(b)
}
