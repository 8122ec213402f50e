package debugger

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/thelolagemann/dmgcore/internal/cpu"
)

var errMissingAddress = errors.New("missing address")

type command struct {
	names []string
	usage string
	// run executes the command, returning true if execution should resume
	run func(d *Debugger, c *cpu.CPU, args []string) (bool, error)
}

var commands []*command

func init() {
	commands = []*command{
		{[]string{"n", "next"}, "execute the next instruction", next},
		{[]string{"c", "continue"}, "run until a breakpoint is hit", continueCmd},
		{[]string{"b", "break"}, "<addr> toggle a breakpoint", breakCmd},
		{[]string{"d", "delete"}, "<addr> delete a breakpoint", deleteCmd},
		{[]string{"l", "list"}, "list breakpoints", list},
		{[]string{"p", "print"}, "<addr> [len] dump memory", printCmd},
		{[]string{"r", "registers"}, "print the registers", registers},
		{[]string{"t", "tile"}, "<index> print a tile from VRAM", tile},
		{[]string{"q", "quit"}, "stop the emulator", quit},
		{[]string{"h", "help"}, "print this help", help},
	}
}

func lookup(name string) *command {
	for _, cmd := range commands {
		if slices.Contains(cmd.names, name) {
			return cmd
		}
	}
	return nil
}

// parseValue parses a hexadecimal value prefixed with 0x, or a
// decimal value.
func parseValue(s string) (uint16, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}

	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return uint16(v), nil
}

func parseAddress(args []string) (uint16, error) {
	if len(args) == 0 {
		return 0, errMissingAddress
	}
	return parseValue(args[0])
}

func next(d *Debugger, c *cpu.CPU, _ []string) (bool, error) {
	name, _ := cpu.Disassemble(c.Bus(), c.PC())
	fmt.Fprintf(d.out, "0x%04x: %s\n", c.PC(), name)
	return true, nil
}

func continueCmd(d *Debugger, _ *cpu.CPU, _ []string) (bool, error) {
	d.state = running
	return true, nil
}

func breakCmd(d *Debugger, _ *cpu.CPU, args []string) (bool, error) {
	addr, err := parseAddress(args)
	if err != nil {
		return false, err
	}

	if _, ok := d.breakpoints[addr]; ok {
		delete(d.breakpoints, addr)
		fmt.Fprintf(d.out, "removed breakpoint at 0x%04x\n", addr)
		return false, nil
	}
	d.breakpoints[addr] = struct{}{}
	fmt.Fprintf(d.out, "added breakpoint at 0x%04x\n", addr)
	return false, nil
}

func deleteCmd(d *Debugger, _ *cpu.CPU, args []string) (bool, error) {
	addr, err := parseAddress(args)
	if err != nil {
		return false, err
	}

	if _, ok := d.breakpoints[addr]; !ok {
		return false, fmt.Errorf("no breakpoint at 0x%04x", addr)
	}
	delete(d.breakpoints, addr)
	fmt.Fprintf(d.out, "removed breakpoint at 0x%04x\n", addr)
	return false, nil
}

func list(d *Debugger, _ *cpu.CPU, _ []string) (bool, error) {
	if len(d.breakpoints) == 0 {
		fmt.Fprintln(d.out, "no breakpoints")
		return false, nil
	}

	for _, addr := range d.Breakpoints() {
		fmt.Fprintf(d.out, "0x%04x\n", addr)
	}
	return false, nil
}

func printCmd(d *Debugger, c *cpu.CPU, args []string) (bool, error) {
	addr, err := parseAddress(args)
	if err != nil {
		return false, err
	}

	n := uint16(1)
	if len(args) > 1 {
		if n, err = parseValue(args[1]); err != nil {
			return false, err
		}
	}

	return false, Dump(d.out, c.Bus(), addr, int(n))
}

func registers(d *Debugger, c *cpu.CPU, _ []string) (bool, error) {
	fmt.Fprintln(d.out, c.Registers.String())
	return false, nil
}

func tile(d *Debugger, _ *cpu.CPU, args []string) (bool, error) {
	if d.tiles == nil {
		return false, errors.New("no tile source")
	}
	index, err := parseAddress(args)
	if err != nil {
		return false, err
	}
	if index > 0xFF {
		return false, fmt.Errorf("tile index 0x%x out of range", index)
	}

	t := d.tiles.TileAt(uint8(index))
	for _, row := range t {
		for _, pixel := range row {
			fmt.Fprint(d.out, pixel)
		}
		fmt.Fprintln(d.out)
	}
	return false, nil
}

func quit(*Debugger, *cpu.CPU, []string) (bool, error) {
	return false, ErrQuit
}

func help(d *Debugger, _ *cpu.CPU, _ []string) (bool, error) {
	for _, cmd := range commands {
		fmt.Fprintf(d.out, "%-14s %s\n", strings.Join(cmd.names, ", "), cmd.usage)
	}
	return false, nil
}

// Breakpoints returns the breakpoints in ascending order.
func (d *Debugger) Breakpoints() []uint16 {
	addrs := make([]uint16, 0, len(d.breakpoints))
	for addr := range d.breakpoints {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	return addrs
}

// AddBreakpoint adds a breakpoint at addr.
func (d *Debugger) AddBreakpoint(addr uint16) {
	d.breakpoints[addr] = struct{}{}
}
