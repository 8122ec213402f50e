// Package display defines the contract between the emulator and the
// drivers that present its frames, and a registry through which the
// drivers compiled into a binary make themselves available.
package display

import (
	"flag"
	"fmt"
	"sort"
	"strconv"

	"github.com/thelolagemann/dmgcore/pkg/display/event"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it.
	Initialize(emu Emulator)
	// Start the display driver. Start blocks, presenting every frame
	// received on fb, until fb is closed, a Quit event is received or
	// the user closes the driver.
	Start(fb <-chan []byte, events <-chan event.Event) error
	// Stop the display driver.
	Stop() error
}

// Emulator is the interface that wraps the methods a driver may
// use to control the emulator it presents. *gameboy.GameBoy
// implements it. Drivers report their errors through its Logger.
type Emulator interface {
	log.Logger

	Pause()
	Resume()
	Paused() bool
	TogglePause()
	// StepFrame runs a single frame while paused.
	StepFrame()
}

// DriverOption is a display driver option. This is used to
// configure a display driver.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "int", "bool", "string", "float"
}

// InstalledDriver is a driver that has been installed. This is
// used to allow drivers to register their name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers is a list of all the installed drivers. This
// variable is exported so that it can be used by the main
// program to determine which drivers can be used. Drivers should
// call display.Install in their init() function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name, or nil if
// no driver with that name is installed. "auto" selects the
// first installed driver.
func GetDriver(name string) Driver {
	if name == "auto" {
		if len(InstalledDrivers) == 0 {
			return nil
		}
		return InstalledDrivers[0].Driver
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver.Driver
		}
	}

	return nil
}

// Names returns the names of the installed drivers, in order of
// installation.
func Names() []string {
	names := make([]string, len(InstalledDrivers))
	for i, driver := range InstalledDrivers {
		names[i] = driver.Name
	}
	return names
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags iterates through all the display driver
// options and registers them with fs. An option unique to one
// driver is prefixed with the driver name, such as -web-addr,
// whereas an option shared by several drivers is registered once
// under its own name and sets every driver's value.
func RegisterFlags(fs *flag.FlagSet) {
	optionCounts := make(map[string]int)
	opts := make(map[string][]DriverOption)
	prefixes := make(map[string]string)

	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			// track how many times an option is used
			optionCounts[opt.Name]++
			opts[opt.Name] = append(opts[opt.Name], opt)
			prefixes[opt.Name] = driver.Name
		}
	}

	names := make([]string, 0, len(opts))
	for o := range opts {
		names = append(names, o)
	}
	sort.Strings(names)

	for _, o := range names {
		opt := opts[o][0]
		if optionCounts[o] > 1 {
			// this requires an option merge
			multi := &multiValue{defaultValue: opt.Default}
			for _, mOpt := range opts[o] {
				multi.values = append(multi.values, mOpt.Value)
				if err := setValue(mOpt.Value, fmt.Sprint(opt.Default)); err != nil {
					panic(fmt.Sprintf("display: invalid default for option %s: %v", o, err))
				}
			}
			fs.Var(multi, o, opt.Description)
			continue
		}

		// this option is unique and should be prefixed
		optName := fmt.Sprintf("%s-%s", prefixes[o], opt.Name)
		switch opt.Type {
		case "string":
			fs.StringVar(opt.Value.(*string), optName, opt.Default.(string), opt.Description)
		case "bool":
			fs.BoolVar(opt.Value.(*bool), optName, opt.Default.(bool), opt.Description)
		case "int":
			fs.IntVar(opt.Value.(*int), optName, opt.Default.(int), opt.Description)
		case "float":
			fs.Float64Var(opt.Value.(*float64), optName, opt.Default.(float64), opt.Description)
		default:
			panic(fmt.Sprintf("display: unknown option type %q for %s", opt.Type, optName))
		}
	}
}

type multiValue struct {
	values       []any
	defaultValue any
}

func (m *multiValue) String() string {
	if m == nil || m.defaultValue == nil {
		return ""
	}
	return fmt.Sprint(m.defaultValue)
}

func (m *multiValue) Set(value string) error {
	// update all the pointers with the provided value
	for _, ptr := range m.values {
		if err := setValue(ptr, value); err != nil {
			return err
		}
	}

	return nil
}

func (m *multiValue) IsBoolFlag() bool {
	_, isBool := m.defaultValue.(bool)
	return isBool
}

func setValue(ptr any, value string) error {
	switch p := ptr.(type) {
	case *string:
		*p = value
	case *bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*p = b
	case *int:
		i, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*p = i
	case *float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		*p = f
	default:
		return fmt.Errorf("unknown type: %T", ptr)
	}
	return nil
}
