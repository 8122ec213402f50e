// Package ppu implements the LCD of the Game Boy: video memory, the
// LCD register block at 0xFF40-0xFF4B and the timing state machine
// that renders the background one scanline at a time.
package ppu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
	// FrameSize is the size of a RGBA framebuffer in bytes.
	FrameSize = ScreenWidth * ScreenHeight * 4

	// VBlankLine is the scanline at which the LCD enters VBlank.
	VBlankLine = 144
)

// PPU is the picture processing unit of the Game Boy.
type PPU struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	control                                  lcd.Control
	status                                   lcd.Status
	scy, scx, ly, lyc, bgp, obp0, obp1, wy, wx uint8

	// State is the current timing state of the LCD.
	State lcd.State

	frame      [FrameSize]uint8
	frameReady bool
	rendered   uint64 // scanlines rendered since creation

	irq *interrupts.Service
}

// New returns a new PPU in the state left by the boot ROM.
// VBlank interrupts are requested through irq.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{
		irq:     irq,
		control: 0x91,
		bgp:     0xFC,
		State:   lcd.Enter(lcd.OamAccess),
	}
	for i := 3; i < FrameSize; i += 4 {
		p.frame[i] = 0xFF
	}
	return p
}

// Read reads from VRAM, OAM or the LCD register block.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		return p.vram[address-0x8000]
	case address >= 0xFE00 && address <= 0xFE9F:
		return p.oam[address-0xFE00]
	}

	switch address {
	case types.LCDC:
		return uint8(p.control)
	case types.STAT:
		return p.status.Read(p.State.Mode, p.ly == p.lyc)
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}

	panic(fmt.Sprintf("ppu: illegal read from address 0x%04X", address))
}

// Write writes to VRAM, OAM or the LCD register block.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		p.vram[address-0x8000] = value
		return
	case address >= 0xFE00 && address <= 0xFE9F:
		p.oam[address-0xFE00] = value
		return
	}

	switch address {
	case types.LCDC:
		p.control = lcd.Control(value)
	case types.STAT:
		p.status.Write(value)
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		p.ly = value
	case types.LYC:
		p.lyc = value
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	default:
		panic(fmt.Sprintf("ppu: illegal write to address 0x%04X", address))
	}
}

// Control returns the decoded LCD control register.
func (p *PPU) Control() lcd.Control {
	return p.control
}

// Scanline returns the current scanline (LY).
func (p *PPU) Scanline() uint8 {
	return p.ly
}

// Tick advances the LCD by one tick, transitioning to the next mode
// once the current mode's threshold is reached.
func (p *PPU) Tick() {
	next, done := p.State.Next()
	if !done {
		p.State = next
		return
	}

	switch p.State.Mode {
	case lcd.OamAccess:
		p.State = lcd.Enter(lcd.OamAndVramAccess)
	case lcd.OamAndVramAccess:
		if p.ly == VBlankLine {
			p.State = lcd.Enter(lcd.VerticalBlank)
			p.frameReady = true
			p.irq.Request(interrupts.VBlankFlag)
			return
		}
		p.renderScanline()
		p.State = lcd.Enter(lcd.HorizontalBlank)
	case lcd.HorizontalBlank:
		p.ly++
		p.State = lcd.Enter(lcd.OamAccess)
	case lcd.VerticalBlank:
		p.ly = 0
		p.State = lcd.Enter(lcd.OamAccess)
	}
}

// FrameReady returns true if VBlank has been entered since the
// last call, meaning the framebuffer holds a complete frame.
func (p *PPU) FrameReady() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}

// Frame returns the framebuffer as a flat slice of RGBA quads,
// row-major with the origin at the top left. The slice aliases
// the PPU's framebuffer and is overwritten as scanlines render.
func (p *PPU) Frame() []uint8 {
	return p.frame[:]
}

// renderScanline renders the background of the current scanline
// into the framebuffer. Each pixel is written as a grey level of
// 100 times its 2-bit colour number.
func (p *PPU) renderScanline() {
	// rendering beyond the visible area during the single long vblank
	// phase is not possible, but guard against LY being written mid line
	if p.ly >= ScreenHeight {
		return
	}

	y := p.scy + p.ly
	mapBase := p.control.BackgroundTileMap()
	row := uint16(y/8) * 32
	offset := int(p.ly) * ScreenWidth * 4

	for x := 0; x < ScreenWidth; x++ {
		bx := p.scx + uint8(x)
		index := p.vram[mapBase+row+uint16(bx/8)-0x8000]

		pixel := p.tilePixel(index, bx%8, y%8)

		i := offset + x*4
		p.frame[i] = pixel * 100
		p.frame[i+1] = pixel * 100
		p.frame[i+2] = pixel * 100
		p.frame[i+3] = 0xFF
	}

	p.rendered++
}

// tileAddress returns the address of the tile with the given index
// in the current tile pattern table.
func (p *PPU) tileAddress(index uint8) uint16 {
	if p.control.SignedTileData() {
		return uint16(int32(p.control.TileData()) + int32(int8(index))*16)
	}
	return p.control.TileData() + uint16(index)*16
}

// tilePixel decodes the 2-bit colour number of the pixel at (x, y)
// of the tile with the given index. Each row of a tile is two bytes,
// the low bit plane followed by the high bit plane.
func (p *PPU) tilePixel(index, x, y uint8) uint8 {
	addr := p.tileAddress(index) + uint16(y)*2 - 0x8000
	lo, hi := p.vram[addr], p.vram[addr+1]
	return decodePixel(lo, hi, x)
}
