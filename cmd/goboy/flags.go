package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// saveFile returns the path of the battery save for a ROM, the ROM's
// path with its extension replaced by .sav.
func saveFile(rom string) string {
	return strings.TrimSuffix(rom, filepath.Ext(rom)) + ".sav"
}

// parseBreakpoints parses a comma separated list of addresses, each
// hex with a 0x prefix or decimal.
func parseBreakpoints(s string) ([]uint16, error) {
	if s == "" {
		return nil, nil
	}

	var bps []uint16
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid breakpoint %q", field)
		}
		bps = append(bps, uint16(v))
	}
	return bps, nil
}

// parseDump parses address[:length]. The length defaults to 256 bytes.
func parseDump(s string) (uint16, int, error) {
	addr, length, ok := strings.Cut(s, ":")
	from, err := strconv.ParseUint(addr, 0, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dump address %q", addr)
	}
	if !ok {
		return uint16(from), 256, nil
	}

	n, err := strconv.ParseUint(length, 0, 17)
	if err != nil || n == 0 || from+n > 0x10000 {
		return 0, 0, fmt.Errorf("invalid dump length %q", length)
	}
	return uint16(from), int(n), nil
}

// writeFrame writes frame to filename, as a PNG or BMP depending on
// its extension.
func writeFrame(filename string, frame []byte, scale int) error {
	format := utils.ImageFormat(filename)
	if format != "png" && format != "bmp" {
		return fmt.Errorf("unsupported image format %q, use .png or .bmp", format)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	img := utils.Scale(utils.FrameImage(frame, ppu.ScreenWidth), scale)
	if err := utils.EncodeImage(f, img, format); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return f.Close()
}

// frameTimer returns a FrameHook sending the average frame time to a
// display driver every 60 frames. Events are dropped rather than stall
// the emulator when the driver is busy.
func frameTimer(events chan<- event.Event) gameboy.FrameHook {
	var total time.Duration
	var n int
	return func(_ []uint8, elapsed time.Duration) {
		total += elapsed
		if n++; n < 60 {
			return
		}

		select {
		case events <- event.NewFrameTime(total / time.Duration(n)):
		default:
		}
		total, n = 0, 0
	}
}
