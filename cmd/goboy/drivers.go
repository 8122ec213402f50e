//go:build !test

package main

import (
	_ "github.com/thelolagemann/dmgcore/pkg/display/ebiten"
	_ "github.com/thelolagemann/dmgcore/pkg/display/fyne"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func askForROM() (string, error) {
	return utils.AskForFile("Open ROM", ".")
}
