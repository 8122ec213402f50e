package utils

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlotFrameTimes draws a line chart of the time taken to emulate each
// frame, in milliseconds, and writes it to w as a 640x480 PNG.
func PlotFrameTimes(w io.Writer, frameTimes []time.Duration) error {
	if len(frameTimes) == 0 {
		return errors.New("no frame times to plot")
	}

	frameTimePlot := plot.New()
	frameTimePlot.Title.Text = "Frame Time"
	frameTimePlot.X.Label.Text = "Frame"
	frameTimePlot.Y.Label.Text = "ms"

	xys := make(plotter.XYs, len(frameTimes))
	for i, frameTime := range frameTimes {
		xys[i].X = float64(i)
		xys[i].Y = float64(frameTime) / float64(time.Millisecond)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("plotting frame times: %w", err)
	}
	frameTimePlot.Add(line)

	// the budget a frame has to run at full speed
	budget := plotter.NewFunction(func(float64) float64 {
		return float64(time.Second/60) / float64(time.Millisecond)
	})
	budget.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	frameTimePlot.Add(budget)

	frameTimeImage := image.NewRGBA(image.Rect(0, 0, 640, 480))
	c := vgimg.NewWith(vgimg.UseImage(frameTimeImage))
	frameTimePlot.Draw(draw.New(c))

	return png.Encode(w, c.Image())
}
