// Package debugger provides an interactive line mode debugger, that
// pauses the CPU before an instruction is executed and reads commands
// from its input.
package debugger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// ErrQuit is returned by Tick when the user asks to quit, or the
// input is exhausted.
var ErrQuit = errors.New("debugger: quit")

// Prompt is shown before every command read from a terminal.
const Prompt = "gbdb=> "

type state uint8

const (
	paused state = iota
	running
)

// LineReader reads a single line of input, without its line ending.
// *term.Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

// TileSource decodes tiles from VRAM, for the tile command.
type TileSource interface {
	TileAt(index uint8) ppu.Tile
}

// Debugger is checked once per CPU step. While paused, or when PC
// reaches a breakpoint, it blocks reading commands until one resumes
// execution.
type Debugger struct {
	state       state
	breakpoints map[uint16]struct{}

	in     LineReader
	out    io.Writer
	prompt bool

	last     *command
	lastArgs []string

	tiles TileSource
	log   log.Logger
}

// Opt configures a Debugger.
type Opt func(*Debugger)

// WithTiles enables the tile command, decoding tiles from src.
func WithTiles(src TileSource) Opt {
	return func(d *Debugger) {
		d.tiles = src
	}
}

// WithPrompt shows Prompt before each command is read. Only useful
// when the input is an interactive terminal that does not prompt
// itself.
func WithPrompt() Opt {
	return func(d *Debugger) {
		d.prompt = true
	}
}

// New returns a paused Debugger reading commands from in and writing
// to out.
func New(in io.Reader, out io.Writer, logger log.Logger, opts ...Opt) *Debugger {
	return NewWithLineReader(&bufferedReader{bufio.NewReader(in)}, out, logger, opts...)
}

// NewWithLineReader returns a paused Debugger reading commands from
// in, such as a *term.Terminal with line editing and history.
func NewWithLineReader(in LineReader, out io.Writer, logger log.Logger, opts ...Opt) *Debugger {
	d := &Debugger{
		breakpoints: make(map[uint16]struct{}),
		in:          in,
		out:         out,
		log:         logger,
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Running returns true if the debugger is not paused.
func (d *Debugger) Running() bool {
	return d.state == running
}

// Tick is called before every instruction. If the debugger is paused,
// or PC is at a breakpoint, it reads and runs commands until one of
// them resumes execution. ErrQuit is returned when the user quits.
func (d *Debugger) Tick(c *cpu.CPU) error {
	if d.state == running {
		if _, ok := d.breakpoints[c.PC()]; !ok {
			return nil
		}
		d.state = paused
		d.log.Infof("breakpoint hit at 0x%04X", c.PC())
	}

	for {
		if d.prompt {
			fmt.Fprint(d.out, Prompt)
		}

		line, err := d.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrQuit
			}
			return fmt.Errorf("debugger: reading command: %w", err)
		}

		cmd, args := d.last, d.lastArgs
		if fields := strings.Fields(line); len(fields) > 0 {
			if cmd = lookup(fields[0]); cmd == nil {
				fmt.Fprintf(d.out, "unknown command %q, type h for help\n", fields[0])
				continue
			}
			args = fields[1:]
		}
		if cmd == nil {
			continue
		}
		d.last, d.lastArgs = cmd, args

		resume, err := cmd.run(d, c, args)
		switch {
		case errors.Is(err, ErrQuit):
			return err
		case err != nil:
			fmt.Fprintf(d.out, "%s: %v\n", cmd.names[len(cmd.names)-1], err)
		case resume:
			return nil
		}
	}
}

// bufferedReader reads lines from a plain io.Reader.
type bufferedReader struct {
	r *bufio.Reader
}

func (b *bufferedReader) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
