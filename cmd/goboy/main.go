package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/thelolagemann/dmgcore/internal/debugger"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	_ "github.com/thelolagemann/dmgcore/pkg/display/web"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

var (
	_ display.Emulator = &gameboy.GameBoy{}
)

var (
	romFile     = flag.String("rom", "", "The rom file to load, a file dialog is shown if omitted")
	bootROM     = flag.String("boot", "", "The boot rom file to load")
	driverName  = flag.String("driver", "auto", "The display driver to use. Can be auto, none, "+strings.Join(display.Names(), ", "))
	debug       = flag.Bool("debug", false, "Start paused in the interactive debugger")
	breakpoints = flag.String("break", "", "Comma separated breakpoints for the debugger, such as 0x0150,0x0200")
	trace       = flag.Bool("trace", false, "Log every instruction executed, implies -v")
	frames      = flag.Int("frames", 0, "Stop after this many frames, 0 runs until interrupted")
	out         = flag.String("out", "", "Write the last frame to this .png or .bmp file")
	scale       = flag.Int("scale", 1, "The scale factor applied to -out")
	expect      = flag.String("expect", "", "Exit with an error unless the xxhash of the last frame matches")
	plotFile    = flag.String("plot", "", "Write a chart of the time taken by each frame to this .png file")
	dump        = flag.String("dump", "", "Dump memory once stopped, as address[:length]")
	save        = flag.Bool("save", true, "Load and store battery backed RAM in a .sav next to the ROM")
	verbose     = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger, err := log.New(log.Config{Level: log.Verbose(*verbose || *trace)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "goboy: %v\n", err)
		os.Exit(2)
	}

	if err := run(logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger log.Logger) error {
	headless := *driverName == "none"
	var driver display.Driver
	if !headless {
		if driver = display.GetDriver(*driverName); driver == nil {
			return fmt.Errorf("invalid display driver %q, installed drivers are %s", *driverName, strings.Join(display.Names(), ", "))
		}
	}

	if *romFile == "" {
		if headless {
			return errors.New("-rom is required without a display driver")
		}
		file, err := askForROM()
		if err != nil {
			return fmt.Errorf("choosing a ROM: %w", err)
		}
		*romFile = file
	}

	// open the rom file
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}

	// open the boot rom file
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	savePath := saveFile(*romFile)
	if *save {
		data, err := os.ReadFile(savePath)
		switch {
		case err == nil:
			logger.Infof("loading save %s", savePath)
			opts = append(opts, gameboy.WithSave(data))
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}

	if *frames > 0 {
		opts = append(opts, gameboy.WithFrameLimit(*frames))
	}
	if *trace {
		opts = append(opts, gameboy.WithTrace())
	}

	var last []byte
	var frameTimes []time.Duration
	opts = append(opts, gameboy.WithFrameHook(func(frame []uint8, elapsed time.Duration) {
		last = append(last[:0], frame...)
		if *plotFile != "" {
			frameTimes = append(frameTimes, elapsed)
		}
	}))

	events := make(chan event.Event, 8)
	if !headless {
		opts = append(opts, gameboy.WithFrameHook(frameTimer(events)))
	}

	if *debug {
		d, restore, err := debugger.NewTerminal(logger)
		if err != nil {
			return err
		}
		defer restore()

		bps, err := parseBreakpoints(*breakpoints)
		if err != nil {
			return err
		}
		for _, bp := range bps {
			d.AddBreakpoint(bp)
		}
		opts = append(opts, gameboy.WithDebugger(d))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fb := make(chan []byte, 1)
	if headless {
		go func() {
			for range fb {
			}
		}()
		err = gb.Run(ctx, fb)
	} else {
		driver.Initialize(gb)
		events <- event.NewTitle(gb.Cartridge.Title())

		errs := make(chan error, 1)
		go func() {
			errs <- gb.Run(ctx, fb)
			select {
			case events <- event.NewQuit():
			default:
			}
		}()

		driverErr := driver.Start(fb, events)
		cancel()
		if err = <-errs; err == nil {
			err = driverErr
		}
	}

	if *save {
		if data, ok := gb.Save(); ok {
			if err := utils.SaveFile(savePath, data); err != nil {
				return err
			}
			logger.Infof("saved %s", savePath)
		}
	}
	if err != nil {
		return err
	}
	logger.Infof("emulated %d frames", gb.Frames())
	if last != nil {
		logger.Infof("last frame hash %s", utils.FrameHashString(last))
	}

	return finish(gb, last, frameTimes)
}

// finish writes the outputs requested once the emulator has stopped.
func finish(gb *gameboy.GameBoy, last []byte, frameTimes []time.Duration) error {
	if *dump != "" {
		from, n, err := parseDump(*dump)
		if err != nil {
			return err
		}
		if err := debugger.Dump(os.Stdout, gb.MMU, from, n); err != nil {
			return err
		}
	}

	if *out != "" {
		if last == nil {
			return errors.New("no frame to write")
		}
		if err := writeFrame(*out, last, *scale); err != nil {
			return err
		}
	}

	if *plotFile != "" {
		f, err := os.Create(*plotFile)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := utils.PlotFrameTimes(f, frameTimes); err != nil {
			return err
		}
	}

	if *expect != "" {
		want, err := utils.ParseFrameHash(*expect)
		if err != nil {
			return err
		}
		if got := utils.FrameHash(last); got != want {
			return fmt.Errorf("frame hash %016x does not match %016x", got, want)
		}
	}

	return nil
}
