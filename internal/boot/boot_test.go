package boot

import "testing"

func TestLoadBootROM(t *testing.T) {
	raw := make([]byte, Size)
	raw[0] = 0x31

	b, err := LoadBootROM(raw)
	if err != nil {
		t.Fatal(err)
	}
	if b.Read(0) != 0x31 {
		t.Errorf("expected 0x31, got 0x%02X", b.Read(0))
	}
	if len(b.Checksum()) != 32 {
		t.Errorf("expected md5 hex checksum, got %q", b.Checksum())
	}

	if _, err := LoadBootROM(make([]byte, 255)); err == nil {
		t.Errorf("expected error for short boot rom")
	}

	var missing *ROM
	if missing.Checksum() != "" {
		t.Errorf("expected empty checksum for nil boot rom")
	}
}

func TestROM_Model(t *testing.T) {
	b, err := LoadBootROM(make([]byte, Size))
	if err != nil {
		t.Fatal(err)
	}
	if b.Model() != "unknown" {
		t.Errorf("expected a blank boot rom to be unknown, got %s", b.Model())
	}

	b.checksum = DMG
	if b.Model() != "DMG" {
		t.Errorf("expected DMG, got %s", b.Model())
	}
}
