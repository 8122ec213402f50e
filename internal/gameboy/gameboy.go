// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// The GameBoy runs the CPU, the memory bus and the LCD in lockstep: every
// instruction executed by the CPU ticks the LCD once per cycle it took,
// and the frame is handed over once the LCD enters VBlank.
package gameboy

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/debugger"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/io"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224
)

// FrameHook is called with every completed frame, and the time it
// took to emulate it. The frame must not be retained.
type FrameHook func(frame []uint8, elapsed time.Duration)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	IO         *io.IO
	Interrupts *interrupts.Service
	Cartridge  cartridge.Cartridge

	log.Logger

	bootROM    []byte
	save       []byte
	debugger   *debugger.Debugger
	frameLimit int
	frameHooks []FrameHook
	trace      bool

	frames int

	paused  atomic.Bool
	pending atomic.Int32 // frames to run while paused
	resume  chan struct{}
}

// New returns a new GameBoy running rom. Without a boot ROM, the
// registers and hardware start in the state the DMG boot ROM leaves
// them in, with PC at 0x0100.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
		resume: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	header := cart.Header()
	g.Infof("loaded %s", header.String())
	if !header.ValidLogo() {
		g.Warnf("cartridge logo does not match, the boot ROM would lock up")
	}
	if !header.ValidChecksum() {
		g.Warnf("cartridge header checksum mismatch")
	}
	g.Cartridge = cart
	if battery, ok := g.battery(); ok && g.save != nil {
		battery.Load(g.save)
	}

	g.Interrupts = interrupts.NewService()
	g.PPU = ppu.New(g.Interrupts)
	g.IO = io.New(g.PPU, g.Interrupts)
	g.MMU = mmu.NewMMU(cart, g.PPU, g.IO, g.Interrupts, g.Logger)
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts, g.Logger)

	if g.bootROM != nil {
		b, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.MMU.SetBootROM(b)
		// start from the power on state, rather than the state left
		// once the boot ROM has completed
		g.CPU.Registers = cpu.Registers{}
		g.Infof("using %s boot ROM %s", b.Model(), b.Checksum())
	}

	if g.debugger != nil {
		debugger.WithTiles(g.PPU)(g.debugger)
	}

	return g, nil
}

// Frames returns the number of frames emulated.
func (g *GameBoy) Frames() int {
	return g.frames
}

// Step runs a single instruction, ticking the LCD once for every cycle
// it took. debugger.ErrQuit is returned if the attached debugger quit,
// and a *cpu.IllegalInstructionError if an undefined opcode was fetched.
func (g *GameBoy) Step() (uint8, error) {
	if g.debugger != nil {
		if err := g.debugger.Tick(g.CPU); err != nil {
			return 0, err
		}
	}
	if g.trace {
		pc := g.CPU.PC()
		name, _ := cpu.Disassemble(g.MMU, pc)
		g.Debugf("%04X %02X %-16s %s", pc, g.MMU.Read(pc), name, g.CPU.Registers.String())
	}

	cycles, err := g.CPU.Step()
	if err != nil {
		return 0, fmt.Errorf("gameboy: %w", err)
	}
	for i := uint8(0); i < cycles; i++ {
		g.PPU.Tick()
	}

	return cycles, nil
}

// Frame will step the emulation until the PPU has finished
// rendering the current frame, and return it. The returned slice
// aliases the framebuffer.
func (g *GameBoy) Frame() ([]uint8, error) {
	start := time.Now()
	for !g.PPU.FrameReady() {
		if _, err := g.Step(); err != nil {
			return nil, err
		}
	}
	g.frames++

	frame := g.PPU.Frame()
	elapsed := time.Since(start)
	for _, hook := range g.frameHooks {
		hook(frame, elapsed)
	}

	return frame, nil
}

// Run emulates frames until ctx is cancelled, the frame limit is
// reached or the debugger quits, sending a copy of every frame to
// frames. frames is closed once Run returns. Only a failure of the
// emulation itself, such as an illegal instruction, is returned.
func (g *GameBoy) Run(ctx context.Context, frames chan<- []byte) error {
	defer close(frames)

	for g.frameLimit == 0 || g.frames < g.frameLimit {
		if err := ctx.Err(); err != nil {
			return nil
		}
		for g.paused.Load() && g.pending.Load() == 0 {
			select {
			case <-g.resume:
			case <-ctx.Done():
				return nil
			}
		}

		frame, err := g.Frame()
		if errors.Is(err, debugger.ErrQuit) {
			return nil
		} else if err != nil {
			return err
		}

		if g.pending.Load() > 0 {
			g.pending.Add(-1)
		}

		buf := make([]byte, len(frame))
		copy(buf, frame)
		select {
		case frames <- buf:
		case <-ctx.Done():
			return nil
		}
	}

	return nil
}

// Pause stops Run before the next frame. It is safe to call from any
// goroutine.
func (g *GameBoy) Pause() {
	g.paused.Store(true)
}

// Resume continues a paused Run, dropping any frames still queued by
// StepFrame.
func (g *GameBoy) Resume() {
	g.pending.Store(0)
	g.paused.Store(false)
	g.wake()
}

// Paused reports whether Run is paused.
func (g *GameBoy) Paused() bool {
	return g.paused.Load()
}

// TogglePause pauses a running GameBoy, or resumes a paused one.
func (g *GameBoy) TogglePause() {
	if g.paused.Load() {
		g.Resume()
	} else {
		g.Pause()
	}
}

// StepFrame lets a paused Run emulate a single frame. It does nothing
// unless the GameBoy is paused.
func (g *GameBoy) StepFrame() {
	if !g.paused.Load() {
		return
	}
	g.pending.Add(1)
	g.wake()
}

func (g *GameBoy) wake() {
	select {
	case g.resume <- struct{}{}:
	default:
	}
}

// Save returns the battery backed RAM of the cartridge, or false if
// the cartridge has none.
func (g *GameBoy) Save() ([]byte, bool) {
	battery, ok := g.battery()
	if !ok {
		return nil, false
	}
	return battery.Save(), true
}

// battery returns the cartridge's RAM if the header says it is
// battery backed.
func (g *GameBoy) battery() (cartridge.Battery, bool) {
	switch g.Cartridge.Header().CartridgeType {
	case cartridge.MBC1RAMBATT, cartridge.ROMRAMBATT:
		battery, ok := g.Cartridge.(cartridge.Battery)
		return battery, ok
	}
	return nil, false
}
