//go:build !test

package utils

import "github.com/sqweek/dialog"

// AskForFile shows a native file picker for a ROM, starting in
// startingDir. dialog.ErrCancelled is returned if the user closes it.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().
		SetStartDir(startingDir).
		Filter("Game Boy ROM", "gb", "zip", "7z", "gz").
		Title(title)

	// show the dialog
	return builder.Load()
}
