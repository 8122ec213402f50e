package debugger

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thelolagemann/dmgcore/pkg/log"
)

// NewTerminal returns a Debugger attached to the process' standard
// input and output. When stdin is a terminal it is switched to raw
// mode and read through a term.Terminal, which provides line editing
// and history. The returned function restores the terminal and must
// be called once the debugger is no longer used.
func NewTerminal(logger log.Logger, opts ...Opt) (*Debugger, func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return New(os.Stdin, os.Stdout, logger, opts...), func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("debugger: entering raw mode: %w", err)
	}
	restore := func() {
		if err := term.Restore(fd, state); err != nil {
			logger.Errorf("debugger: restoring terminal: %v", err)
		}
	}

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, Prompt)
	if width, height, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(width, height)
	}

	return NewWithLineReader(t, t, logger, opts...), restore, nil
}
