//go:build !test

// Package ebiten provides a display.Driver that presents frames in an
// ebiten window.
package ebiten

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Ebiten presents frames from an ebiten game loop. ebiten calls Update
// 60 times a second, and each call takes at most one frame, which in
// turn paces the emulator.
type Ebiten struct {
	emu    display.Emulator
	fb     <-chan []byte
	events <-chan event.Event

	tex   *ebiten.Image
	frame []byte
	title string
	scale float64
}

func init() {
	e := &Ebiten{}
	display.Install("ebiten", e, []display.DriverOption{
		{
			Name:        "window-scale",
			Default:     4.0,
			Value:       &e.scale,
			Description: "The initial scale of the window",
			Type:        "float",
		},
	})
}

// Initialize attaches the driver to emu.
func (e *Ebiten) Initialize(emu display.Emulator) {
	e.emu = emu
}

// Start runs the ebiten game loop on the calling goroutine, which must
// be the main goroutine.
func (e *Ebiten) Start(fb <-chan []byte, events <-chan event.Event) error {
	e.fb, e.events = fb, events
	e.title = "dmgcore"

	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowSize(int(ppu.ScreenWidth*e.scale), int(ppu.ScreenHeight*e.scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

// Update takes the next frame, if one is ready, and handles the
// pause, step and screenshot keys.
func (e *Ebiten) Update() error {
	select {
	case frame, ok := <-e.fb:
		if !ok {
			return ebiten.Termination
		}
		e.frame = frame
	default:
	}

	for drained := false; !drained; {
		select {
		case ev, ok := <-e.events:
			if !ok {
				e.events = nil
				drained = true
				continue
			}
			switch ev.Type {
			case event.Quit:
				return ebiten.Termination
			case event.Title:
				e.title = ev.Data.(string)
				ebiten.SetWindowTitle(e.title)
			case event.FrameTime:
				avg := ev.Data.(time.Duration)
				ebiten.SetWindowTitle(fmt.Sprintf("%s | %.2fms", e.title, float64(avg)/float64(time.Millisecond)))
			}
		default:
			drained = true
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		e.emu.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		e.emu.StepFrame()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if e.frame != nil {
			img := utils.FrameImage(e.frame, ppu.ScreenWidth)
			if err := utils.CopyImage(utils.Scale(img, int(e.scale))); err != nil {
				e.emu.Errorf("ebiten: copying frame: %v", err)
			}
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}

	return nil
}

// Draw draws the last frame taken by Update.
func (e *Ebiten) Draw(screen *ebiten.Image) {
	if e.frame == nil {
		return
	}
	if e.tex == nil {
		e.tex = ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight)
	}
	e.tex.WritePixels(e.frame)
	screen.DrawImage(e.tex, nil)
}

// Layout keeps the logical screen at the Game Boy's resolution, ebiten
// scales it to the window.
func (e *Ebiten) Layout(_, _ int) (int, int) {
	return ppu.ScreenWidth, ppu.ScreenHeight
}

// Stop is a no-op, the game loop ends once fb is closed.
func (e *Ebiten) Stop() error {
	return nil
}
