package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/debugger"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithDebugger pauses before every instruction to let d read commands.
func WithDebugger(d *debugger.Debugger) Opt {
	return func(gb *GameBoy) {
		gb.debugger = d
	}
}

// WithBootROM sets the boot ROM for the emulator. It is mapped over
// 0x0000-0x00FF until it writes to types.BDIS, and the CPU starts
// from zeroed registers at 0x0000 instead of the state the boot ROM
// would leave.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithFrameLimit stops Run after n frames.
func WithFrameLimit(n int) Opt {
	return func(gb *GameBoy) {
		gb.frameLimit = n
	}
}

// WithFrameHook calls hook after every frame.
func WithFrameHook(hook FrameHook) Opt {
	return func(gb *GameBoy) {
		gb.frameHooks = append(gb.frameHooks, hook)
	}
}

// WithTrace logs every instruction, and the registers before it
// executes, at debug level.
func WithTrace() Opt {
	return func(gb *GameBoy) {
		gb.trace = true
	}
}

// WithSave loads the battery backed RAM of the cartridge from data.
func WithSave(data []byte) Opt {
	return func(gb *GameBoy) {
		gb.save = data
	}
}
