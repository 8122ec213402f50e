package ppu

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func tick(p *PPU, n int) {
	for i := 0; i < n; i++ {
		p.Tick()
	}
}

func TestPPU_Timing(t *testing.T) {
	p := New(interrupts.NewService())

	tick(p, 80)
	if p.State != lcd.Enter(lcd.OamAndVramAccess) {
		t.Fatalf("expected OamAndVramAccess(0) after 80 ticks, got %s", p.State)
	}

	tick(p, 172)
	if p.State != lcd.Enter(lcd.HorizontalBlank) {
		t.Fatalf("expected HorizontalBlank(0) after 252 ticks, got %s", p.State)
	}
	if p.rendered != 1 {
		t.Errorf("expected exactly one scanline to be rendered, got %d", p.rendered)
	}
	if p.ly != 0 {
		t.Errorf("expected LY to still be 0, got %d", p.ly)
	}

	tick(p, 204)
	if p.State != lcd.Enter(lcd.OamAccess) {
		t.Fatalf("expected OamAccess(0) after 456 ticks, got %s", p.State)
	}
	if p.ly != 1 {
		t.Errorf("expected LY to be 1, got %d", p.ly)
	}
}

func TestPPU_Frame(t *testing.T) {
	irq := interrupts.NewService()
	p := New(irq)

	// 144 visible lines, then the final OAM + transfer before VBlank
	tick(p, 144*456+80+172)
	if p.State != lcd.Enter(lcd.VerticalBlank) {
		t.Fatalf("expected VerticalBlank(0), got %s", p.State)
	}
	if p.rendered != 144 {
		t.Errorf("expected 144 rendered scanlines, got %d", p.rendered)
	}
	if !p.FrameReady() {
		t.Errorf("expected frame to be ready")
	}
	if p.FrameReady() {
		t.Errorf("expected frame ready to be cleared after reading")
	}
	if irq.Flag&interrupts.VBlankFlag == 0 {
		t.Errorf("expected VBlank interrupt to be requested")
	}
	if v := p.Read(types.STAT) & 0x03; v != 0x01 {
		t.Errorf("expected STAT mode 1, got %d", v)
	}

	tick(p, 4560)
	if p.State != lcd.Enter(lcd.OamAccess) || p.ly != 0 {
		t.Errorf("expected OamAccess(0) on line 0, got %s on line %d", p.State, p.ly)
	}
}

func TestPPU_RenderScanline(t *testing.T) {
	p := New(interrupts.NewService())
	p.Write(types.LCDC, 0x91) // unsigned tile data, map at 0x9800

	// tile 1, row 0: colours 3,2,1,0,3,2,1,0
	p.Write(0x8010, 0xAA) // low plane  1010_1010
	p.Write(0x8011, 0xCC) // high plane 1100_1100
	p.Write(0x9800, 0x01)

	p.renderScanline()

	want := []uint8{3, 2, 1, 0, 3, 2, 1, 0}
	for x, colour := range want {
		i := x * 4
		if p.frame[i] != colour*100 || p.frame[i+1] != colour*100 || p.frame[i+2] != colour*100 || p.frame[i+3] != 0xFF {
			t.Errorf("pixel %d: expected grey %d, got %v", x, colour*100, p.frame[i:i+4])
		}
	}
	// tile 0 is blank
	if p.frame[8*4] != 0 {
		t.Errorf("expected pixel 8 to be colour 0, got %d", p.frame[8*4])
	}
}

func TestPPU_RenderScroll(t *testing.T) {
	p := New(interrupts.NewService())
	p.Write(types.LCDC, 0x81) // signed tile data, map at 0x9800

	// tile -1 (0xFF) lives at 0x8FF0, row 3 set to colour 1
	p.Write(0x8FF0+3*2, 0xFF)
	// map entry at column 31, row 0
	p.Write(0x9800+31, 0xFF)

	// scrolling wraps so that screen x 0 is map x 248 and line 0 is map y 3
	p.Write(types.SCX, 248)
	p.Write(types.SCY, 3)
	p.renderScanline()

	for x := 0; x < 8; x++ {
		if v := p.frame[x*4]; v != 100 {
			t.Errorf("pixel %d: expected grey 100, got %d", x, v)
		}
	}
	if v := p.frame[8*4]; v != 0 {
		t.Errorf("pixel 8: expected grey 0, got %d", v)
	}
}

func TestPPU_Registers(t *testing.T) {
	p := New(interrupts.NewService())

	for _, addr := range []uint16{types.SCY, types.SCX, types.LYC, types.BGP, types.OBP0, types.OBP1, types.WY, types.WX} {
		p.Write(addr, 0x5A)
		if v := p.Read(addr); v != 0x5A {
			t.Errorf("0x%04X: expected 0x5A, got 0x%02X", addr, v)
		}
	}

	tick(p, 456*3)
	if v := p.Read(types.LY); v != 3 {
		t.Fatalf("expected LY to be 3, got %d", v)
	}
	p.Write(types.LY, 0x05)
	if v := p.Read(types.LY); v != 0x05 {
		t.Errorf("expected LY to hold the written value, got %d", v)
	}

	// the next HBlank carries on from the written line
	tick(p, 456)
	if v := p.Read(types.LY); v != 0x06 {
		t.Errorf("expected LY to advance to 6, got %d", v)
	}

	p.Write(types.LY, 0)
	p.Write(types.LYC, 0)
	if v := p.Read(types.STAT); v&types.Bit2 == 0 {
		t.Errorf("expected coincidence flag with LY == LYC, got 0x%02X", v)
	}
}

func TestTile(t *testing.T) {
	tile := NewTile([16]uint8{0x3C, 0x7E})
	want := [8]uint8{0, 2, 3, 3, 3, 3, 2, 0}
	if tile[0] != want {
		t.Errorf("expected %v, got %v", want, tile[0])
	}
}
