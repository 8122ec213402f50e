// Package event holds the events a display.Driver receives next to
// its frames. It lives apart from package display so drivers and the
// emulator can share it without an import cycle.
package event

import "time"

// Type tells a driver how to interpret Event.Data.
type Type int

const (
	// Quit asks the driver to close, the emulator has stopped. Data is nil.
	Quit Type = iota
	// FrameTime carries the average time.Duration spent emulating
	// a frame, sampled periodically.
	FrameTime
	// Title carries the string to show in the title bar, usually
	// the cartridge title.
	Title
)

// Event is a single notification for a driver.
type Event struct {
	Type Type
	Data any
}

// NewQuit returns a Quit event.
func NewQuit() Event {
	return Event{Type: Quit}
}

// NewFrameTime returns a FrameTime event for an average frame time.
func NewFrameTime(avg time.Duration) Event {
	return Event{Type: FrameTime, Data: avg}
}

// NewTitle returns a Title event.
func NewTitle(title string) Event {
	return Event{Type: Title, Data: title}
}
