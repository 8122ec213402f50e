package utils

import (
	"bytes"
	"fmt"
	"image"

	"golang.design/x/clipboard"
)

// CopyImage places img on the system clipboard, PNG encoded.
func CopyImage(img image.Image) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}

	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, "png"); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())

	return nil
}
