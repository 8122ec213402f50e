package gameboy

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/debugger"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// buildROM returns a 32kB ROM of the given type, running program
// from 0x0100.
func buildROM(cartType cartridge.Type, ramSize uint8, program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], program)
	copy(rom[0x134:], "GAMEBOY")
	rom[0x147] = byte(cartType)
	rom[0x148] = 0x00
	rom[0x149] = ramSize

	var checksum uint8
	for _, b := range rom[0x134:0x14D] {
		checksum = checksum - b - 1
	}
	rom[0x14D] = checksum
	return rom
}

// loop is JR -2, spinning on itself forever.
var loop = []uint8{0x18, 0xFE}

func TestGameBoy_Frame(t *testing.T) {
	g, err := New(buildROM(cartridge.ROM, 0, loop...))
	if err != nil {
		t.Fatal(err)
	}

	frame, err := g.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if len(frame) != ppu.FrameSize {
		t.Fatalf("expected a frame of %d bytes, got %d", ppu.FrameSize, len(frame))
	}
	if g.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", g.Frames())
	}
	if g.PPU.Scanline() != ppu.VBlankLine {
		t.Errorf("expected the frame to complete on entering VBlank, LY=%d", g.PPU.Scanline())
	}
	if g.CPU.PC() != 0x0100 {
		t.Errorf("expected the CPU to be spinning at 0x0100, got 0x%04X", g.CPU.PC())
	}
	if frame[0] != 0 || frame[3] != 0xFF {
		t.Errorf("expected an opaque black pixel, got %v", frame[:4])
	}
	if g.Interrupts.Flag&0x01 == 0 {
		t.Errorf("expected VBlank to be requested")
	}
}

func TestGameBoy_Run(t *testing.T) {
	var hooked int
	g, err := New(buildROM(cartridge.ROM, 0, loop...),
		WithFrameLimit(3),
		WithFrameHook(func(frame []uint8, elapsed time.Duration) {
			hooked++
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	frames := make(chan []byte, 4)
	if err := g.Run(context.Background(), frames); err != nil {
		t.Fatal(err)
	}

	var received int
	for range frames {
		received++
	}
	if received != 3 || hooked != 3 {
		t.Errorf("expected 3 frames and 3 hook calls, got %d and %d", received, hooked)
	}
}

func TestGameBoy_RunCancelled(t *testing.T) {
	g, err := New(buildROM(cartridge.ROM, 0, loop...))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan []byte)
	done := make(chan error)
	go func() {
		done <- g.Run(ctx, frames)
	}()

	<-frames
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected cancellation to stop cleanly, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected Run to return after cancellation")
	}
}

func TestGameBoy_Pause(t *testing.T) {
	g, err := New(buildROM(cartridge.ROM, 0, loop...))
	if err != nil {
		t.Fatal(err)
	}
	g.Pause()
	g.TogglePause()
	if g.Paused() {
		t.Fatalf("expected toggling to resume")
	}
	g.TogglePause()

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan []byte)
	done := make(chan error)
	go func() {
		done <- g.Run(ctx, frames)
	}()

	g.StepFrame()
	<-frames
	if g.Frames() != 1 {
		t.Errorf("expected a single frame to be stepped, got %d", g.Frames())
	}

	select {
	case <-frames:
		t.Fatalf("expected no frames while paused")
	case <-time.After(50 * time.Millisecond):
	}

	g.Resume()
	<-frames
	<-frames
	cancel()

	if err := <-done; err != nil {
		t.Errorf("expected cancellation to stop cleanly, got %v", err)
	}
}

func TestGameBoy_ResumeDropsSteps(t *testing.T) {
	g, err := New(buildROM(cartridge.ROM, 0, loop...))
	if err != nil {
		t.Fatal(err)
	}
	g.Pause()
	g.StepFrame()
	g.StepFrame()
	g.Resume()
	g.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan []byte, 4)
	done := make(chan error)
	go func() {
		done <- g.Run(ctx, frames)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if g.Frames() != 0 {
		t.Errorf("expected queued steps to be dropped on resume, got %d frames", g.Frames())
	}
}

func TestGameBoy_IllegalInstruction(t *testing.T) {
	var out strings.Builder
	logger, err := log.New(log.Config{Level: "info", Output: &out})
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(buildROM(cartridge.ROM, 0, 0x00, 0xD3), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	err = g.Run(context.Background(), make(chan []byte, 1))
	var illegal *cpu.IllegalInstructionError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected an IllegalInstructionError, got %v", err)
	}
	if illegal.PC != 0x0101 || illegal.Opcode != 0xD3 {
		t.Errorf("expected 0xD3 at 0x0101, got 0x%02X at 0x%04X", illegal.Opcode, illegal.PC)
	}
	if strings.Contains(out.String(), "level=error") {
		t.Errorf("expected the error to be returned rather than logged, got %q", out.String())
	}
}

func TestGameBoy_Debugger(t *testing.T) {
	var out strings.Builder
	d := debugger.New(strings.NewReader("n\nr\nq\n"), &out, log.NewNullLogger())
	g, err := New(buildROM(cartridge.ROM, 0, loop...), WithDebugger(d))
	if err != nil {
		t.Fatal(err)
	}

	frames := make(chan []byte, 1)
	if err := g.Run(context.Background(), frames); err != nil {
		t.Fatalf("expected quitting the debugger to stop cleanly, got %v", err)
	}
	if _, ok := <-frames; ok {
		t.Errorf("expected no frames")
	}
	if !strings.Contains(out.String(), "0x0100: JR $0100") {
		t.Errorf("expected the instruction to be printed, got %q", out.String())
	}
}

func TestGameBoy_BootROM(t *testing.T) {
	boot := make([]byte, 256)
	copy(boot, loop)

	g, err := New(buildROM(cartridge.ROM, 0, loop...), WithBootROM(boot))
	if err != nil {
		t.Fatal(err)
	}
	if g.CPU.PC() != 0x0000 || g.CPU.SP() != 0x0000 {
		t.Errorf("expected the CPU to start at 0x0000, got PC=0x%04X SP=0x%04X", g.CPU.PC(), g.CPU.SP())
	}
	if g.MMU.Read(0x0000) != 0x18 {
		t.Errorf("expected the boot ROM to be mapped at 0x0000")
	}

	if _, err := New(buildROM(cartridge.ROM, 0), WithBootROM(boot[:10])); err == nil {
		t.Errorf("expected an error for a short boot ROM")
	}
}

func TestGameBoy_Save(t *testing.T) {
	save := make([]byte, 0x2000)
	save[0] = 0x42

	g, err := New(buildROM(cartridge.MBC1RAMBATT, 0x02, loop...), WithSave(save))
	if err != nil {
		t.Fatal(err)
	}

	g.MMU.Write(0x0000, 0x0A)
	if v := g.MMU.Read(0xA000); v != 0x42 {
		t.Errorf("expected the save to be loaded, got 0x%02X", v)
	}

	g.MMU.Write(0xA001, 0x99)
	data, ok := g.Save()
	if !ok || len(data) != 0x2000 || data[1] != 0x99 {
		t.Errorf("expected the cartridge RAM to be saved")
	}

	g, err = New(buildROM(cartridge.ROM, 0, loop...))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Save(); ok {
		t.Errorf("expected a ROM only cartridge to have no save")
	}
}

func TestGameBoy_SaveROMRAM(t *testing.T) {
	g, err := New(buildROM(cartridge.ROMRAMBATT, 0x02, loop...), WithSave([]byte{0x42}))
	if err != nil {
		t.Fatal(err)
	}
	if v := g.MMU.Read(0xA000); v != 0x42 {
		t.Errorf("expected the save to be loaded, got 0x%02X", v)
	}

	g.MMU.Write(0xA001, 0x99)
	data, ok := g.Save()
	if !ok || len(data) != 0x2000 || data[1] != 0x99 {
		t.Errorf("expected the cartridge RAM to be saved")
	}

	// RAM without a battery is neither loaded nor saved
	g, err = New(buildROM(cartridge.ROMRAM, 0x02, loop...), WithSave([]byte{0x42}))
	if err != nil {
		t.Fatal(err)
	}
	if v := g.MMU.Read(0xA000); v != 0x00 {
		t.Errorf("expected the save to be ignored, got 0x%02X", v)
	}
	if _, ok := g.Save(); ok {
		t.Errorf("expected a cartridge without a battery to have no save")
	}
}

func TestGameBoy_UnsupportedCartridge(t *testing.T) {
	if _, err := New(buildROM(cartridge.Type(0x13), 0)); err == nil {
		t.Errorf("expected an error for an unsupported cartridge type")
	}
}
