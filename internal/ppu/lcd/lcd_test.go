package lcd

import "testing"

func TestControl(t *testing.T) {
	c := Control(0x91) // LCD on, unsigned tile data, background on

	if !c.Enabled() {
		t.Errorf("expected LCD to be enabled")
	}
	if c.TileData() != 0x8000 || c.SignedTileData() {
		t.Errorf("expected unsigned tile data at 0x8000, got 0x%04X", c.TileData())
	}
	if c.BackgroundTileMap() != 0x9800 {
		t.Errorf("expected background map at 0x9800, got 0x%04X", c.BackgroundTileMap())
	}
	if !c.BackgroundEnabled() || c.WindowEnabled() || c.SpritesEnabled() {
		t.Errorf("unexpected enable bits decoded from 0x%02X", uint8(c))
	}

	c = Control(0x6E)
	if c.Enabled() {
		t.Errorf("expected LCD to be disabled")
	}
	if c.WindowTileMap() != 0x9C00 || c.BackgroundTileMap() != 0x9C00 {
		t.Errorf("expected high tile maps, got 0x%04X/0x%04X", c.WindowTileMap(), c.BackgroundTileMap())
	}
	if c.TileData() != 0x9000 || !c.SignedTileData() {
		t.Errorf("expected signed tile data at 0x9000, got 0x%04X", c.TileData())
	}
	if c.SpriteSize() != 16 {
		t.Errorf("expected 8x16 sprites, got %d", c.SpriteSize())
	}
	if !c.WindowEnabled() || !c.SpritesEnabled() || c.BackgroundEnabled() {
		t.Errorf("unexpected enable bits decoded from 0x%02X", uint8(c))
	}
}

func TestStatus(t *testing.T) {
	s := &Status{}
	s.Write(0xFF)

	tests := []struct {
		mode        Mode
		coincidence bool
		want        uint8
	}{
		{HorizontalBlank, false, 0xF8},
		{VerticalBlank, false, 0xF9},
		{OamAccess, false, 0xFA},
		{OamAndVramAccess, true, 0xFF},
	}
	for _, tt := range tests {
		if v := s.Read(tt.mode, tt.coincidence); v != tt.want {
			t.Errorf("%s: expected 0x%02X, got 0x%02X", tt.mode, tt.want, v)
		}
	}
}

func TestState_Next(t *testing.T) {
	s := Enter(OamAccess)
	for i := 0; i < 79; i++ {
		var done bool
		s, done = s.Next()
		if done {
			t.Fatalf("threshold reached early after %d ticks", i+1)
		}
	}
	if s.Count != 79 {
		t.Errorf("expected count 79, got %d", s.Count)
	}
	if _, done := s.Next(); !done {
		t.Errorf("expected threshold to be reached on the 80th tick")
	}
}
