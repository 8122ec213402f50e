//go:build !test

// Package fyne provides a display.Driver that presents frames in a
// fyne window.
package fyne

import (
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/display/event"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

var keyHandlers = map[fyne.KeyName]func(*Fyne){
	fyne.KeyP: func(f *Fyne) {
		f.emu.TogglePause()
	},
	fyne.KeyN: func(f *Fyne) {
		f.emu.StepFrame()
	},
	fyne.KeyC: func(f *Fyne) {
		// copy the current frame to the clipboard
		if err := utils.CopyImage(utils.Scale(f.snapshot(), int(f.scale))); err != nil {
			f.emu.Errorf("fyne: copying frame: %v", err)
		}
	},
	fyne.KeyY: func(f *Fyne) {
		// dump current frame
		file, err := os.Create("frame.png")
		if err != nil {
			f.emu.Errorf("fyne: saving frame: %v", err)
			return
		}
		defer file.Close()

		if err := utils.EncodeImage(file, f.snapshot(), "png"); err != nil {
			f.emu.Errorf("fyne: saving frame: %v", err)
			return
		}
		f.emu.Infof("saved frame.png")
	},
	fyne.KeyEscape: func(f *Fyne) {
		f.app.Quit()
	},
}

// Fyne presents frames on a canvas.Raster, scaled with nearest
// neighbour sampling to the size of the window.
type Fyne struct {
	app    fyne.App
	window fyne.Window
	emu    display.Emulator

	raster *canvas.Raster
	img    *image.RGBA
	imgMu  sync.RWMutex

	title string
	scale float64
}

func init() {
	f := &Fyne{}
	display.Install("fyne", f, []display.DriverOption{
		{
			Name:        "window-scale",
			Default:     4.0,
			Value:       &f.scale,
			Description: "The initial scale of the window",
			Type:        "float",
		},
	})
}

// Initialize attaches the driver to emu.
func (f *Fyne) Initialize(emu display.Emulator) {
	f.emu = emu
}

// Start opens the window and runs the fyne event loop on the calling
// goroutine, which must be the main goroutine.
func (f *Fyne) Start(fb <-chan []byte, events <-chan event.Event) error {
	f.app = app.NewWithID("com.github.thelolagemann.dmgcore")
	f.app.Settings().SetTheme(&defaultTheme{})

	f.title = "dmgcore"
	f.window = f.app.NewWindow(f.title)
	f.window.SetMaster()
	f.window.SetPadded(false)

	// create the image to draw to
	f.img = image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for i := 3; i < len(f.img.Pix); i += 4 {
		f.img.Pix[i] = 0xFF
	}

	// create the canvas
	f.raster = canvas.NewRaster(func(_, _ int) image.Image {
		return f.snapshot()
	})
	f.raster.ScaleMode = canvas.ImageScalePixels
	f.raster.SetMinSize(fyne.NewSize(ppu.ScreenWidth, ppu.ScreenHeight))

	f.window.SetContent(f.raster)
	f.window.Resize(fyne.NewSize(float32(ppu.ScreenWidth*f.scale), float32(ppu.ScreenHeight*f.scale)))
	f.window.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		if h, ok := keyHandlers[e.Name]; ok {
			h(f)
		}
	})

	go f.present(fb, events)

	f.window.ShowAndRun()
	return nil
}

// present copies a frame into the raster at most 60 times a second,
// which in turn paces the emulator.
func (f *Fyne) present(fb <-chan []byte, events <-chan event.Event) {
	t := time.NewTicker(time.Second / 60)
	defer t.Stop()

	var frames <-chan []byte
	for {
		select {
		case <-t.C:
			frames = fb
		case frame, ok := <-frames:
			if !ok {
				f.app.Quit()
				return
			}
			f.imgMu.Lock()
			copy(f.img.Pix, frame)
			f.imgMu.Unlock()
			f.raster.Refresh()
			frames = nil
		case e, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			switch e.Type {
			case event.Quit:
				f.app.Quit()
				return
			case event.Title:
				f.title = e.Data.(string)
				f.window.SetTitle(f.title)
			case event.FrameTime:
				avg := e.Data.(time.Duration)
				f.window.SetTitle(fmt.Sprintf("%s | %.2fms", f.title, float64(avg)/float64(time.Millisecond)))
			}
		}
	}
}

// snapshot returns a copy of the frame on screen, safe to use while
// the next frame is presented.
func (f *Fyne) snapshot() *image.RGBA {
	f.imgMu.RLock()
	defer f.imgMu.RUnlock()

	img := image.NewRGBA(f.img.Rect)
	copy(img.Pix, f.img.Pix)
	return img
}

// Stop closes the window.
func (f *Fyne) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}
