package lcd

import (
	"github.com/thelolagemann/dmgcore/pkg/bits"
)

// Control is the LCD control register (0xFF40). It is stored as
// written and decoded on demand by its accessors:
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF signed, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Control uint8

// Enabled returns the LCD Enable bit.
func (c Control) Enabled() bool {
	return bits.Test(uint8(c), 7)
}

// WindowTileMap returns the start address of the window tile map.
func (c Control) WindowTileMap() uint16 {
	return tileMap(bits.Test(uint8(c), 6))
}

// WindowEnabled returns the Window Display Enable bit.
func (c Control) WindowEnabled() bool {
	return bits.Test(uint8(c), 5)
}

// TileData returns the base address of the tile pattern table. When
// the base is 0x9000 tile indices are signed.
func (c Control) TileData() uint16 {
	if bits.Test(uint8(c), 4) {
		return 0x8000
	}
	return 0x9000
}

// SignedTileData returns true if tile indices are signed offsets
// from 0x9000.
func (c Control) SignedTileData() bool {
	return !bits.Test(uint8(c), 4)
}

// BackgroundTileMap returns the start address of the background tile map.
func (c Control) BackgroundTileMap() uint16 {
	return tileMap(bits.Test(uint8(c), 3))
}

// SpriteSize returns the height of sprites in pixels.
func (c Control) SpriteSize() uint8 {
	return 8 + bits.Val(uint8(c), 2)*8
}

// SpritesEnabled returns the OBJ Display Enable bit.
func (c Control) SpritesEnabled() bool {
	return bits.Test(uint8(c), 1)
}

// BackgroundEnabled returns the BG/Window Display bit.
func (c Control) BackgroundEnabled() bool {
	return bits.Test(uint8(c), 0)
}

func tileMap(high bool) uint16 {
	if high {
		return 0x9C00
	}
	return 0x9800
}
