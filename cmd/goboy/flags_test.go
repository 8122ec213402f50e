package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
)

func TestSaveFile(t *testing.T) {
	for rom, expected := range map[string]string{
		"tetris.gb":         "tetris.sav",
		"roms/tetris.zip":   "roms/tetris.sav",
		"tetris":            "tetris.sav",
		"roms/tetris.gb.gz": "roms/tetris.gb.sav",
	} {
		if got := saveFile(rom); got != expected {
			t.Errorf("%s: expected %s, got %s", rom, expected, got)
		}
	}
}

func TestParseBreakpoints(t *testing.T) {
	bps, err := parseBreakpoints("0x0150, 512")
	if err != nil {
		t.Fatal(err)
	}
	if len(bps) != 2 || bps[0] != 0x0150 || bps[1] != 0x0200 {
		t.Errorf("expected [0x0150 0x0200], got %v", bps)
	}

	if bps, err := parseBreakpoints(""); err != nil || bps != nil {
		t.Errorf("expected no breakpoints, got %v %v", bps, err)
	}
	if _, err := parseBreakpoints("0x10000"); err == nil {
		t.Errorf("expected an error for an out of range breakpoint")
	}
}

func TestParseDump(t *testing.T) {
	from, n, err := parseDump("0xC000:0x20")
	if err != nil {
		t.Fatal(err)
	}
	if from != 0xC000 || n != 0x20 {
		t.Errorf("expected 0xC000 and 32 bytes, got 0x%04X and %d", from, n)
	}

	if _, n, _ := parseDump("0x8000"); n != 256 {
		t.Errorf("expected the length to default to 256, got %d", n)
	}
	if _, n, err := parseDump("0xFF00:256"); err != nil || n != 256 {
		t.Errorf("expected a dump up to the end of memory, got %d %v", n, err)
	}

	for _, in := range []string{"zz", "0xFF00:257", "0x100:0", "0x100:x"} {
		if _, _, err := parseDump(in); err == nil {
			t.Errorf("%s: expected an error", in)
		}
	}
}

func TestWriteFrame(t *testing.T) {
	frame := make([]byte, ppu.FrameSize)
	for i := 3; i < len(frame); i += 4 {
		frame[i] = 0xFF
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := writeFrame(path, frame, 2); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != ppu.ScreenWidth*2 || b.Dy() != ppu.ScreenHeight*2 {
		t.Errorf("expected a 320x288 image, got %v", b)
	}

	if err := writeFrame(filepath.Join(t.TempDir(), "frame.gif"), frame, 1); err == nil {
		t.Errorf("expected an error for an unsupported format")
	}
}

func TestFrameTimer(t *testing.T) {
	events := make(chan event.Event, 1)
	hook := frameTimer(events)

	for i := 0; i < 120; i++ {
		hook(nil, 10*time.Millisecond)
	}

	e := <-events
	if e.Type != event.FrameTime || e.Data.(time.Duration) != 10*time.Millisecond {
		t.Errorf("expected an average of 10ms, got %v", e.Data)
	}
	select {
	case <-events:
		t.Errorf("expected the second event to be dropped")
	default:
	}
}
