package lcd

import "fmt"

// Mode represents a mode of the LCD. The values match the mode
// bits reported in STAT.
type Mode uint8

const (
	// HorizontalBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HorizontalBlank Mode = iota
	// VerticalBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VerticalBlank
	// OamAccess is the OAM scan mode. The CPU can access the display RAM but not OAM.
	OamAccess
	// OamAndVramAccess is the pixel transfer mode. The CPU can access neither OAM or the display RAM.
	OamAndVramAccess
)

// Threshold returns the number of ticks spent in the mode. VerticalBlank
// is modelled as a single phase spanning all 10 vblank lines.
func (m Mode) Threshold() uint16 {
	switch m {
	case OamAccess:
		return 80
	case OamAndVramAccess:
		return 172
	case HorizontalBlank:
		return 204
	case VerticalBlank:
		return 4560
	}
	panic(fmt.Sprintf("lcd: invalid mode %d", m))
}

func (m Mode) String() string {
	switch m {
	case OamAccess:
		return "OamAccess"
	case OamAndVramAccess:
		return "OamAndVramAccess"
	case HorizontalBlank:
		return "HorizontalBlank"
	case VerticalBlank:
		return "VerticalBlank"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// State is the timing state of the LCD, the current mode and the
// number of ticks spent in it. Count is always below the mode's
// Threshold.
type State struct {
	Mode  Mode
	Count uint16
}

// Next advances the state by one tick. It returns the new state
// and true if the mode's threshold was reached, in which case the
// caller decides the next mode with Transition.
func (s State) Next() (State, bool) {
	if s.Count+1 < s.Mode.Threshold() {
		s.Count++
		return s, false
	}
	return s, true
}

// Enter returns the state at the start of mode m.
func Enter(m Mode) State {
	return State{Mode: m}
}

func (s State) String() string {
	return fmt.Sprintf("%s(%d)", s.Mode, s.Count)
}
