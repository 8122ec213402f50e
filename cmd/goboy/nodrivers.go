//go:build test

package main

import "errors"

func askForROM() (string, error) {
	return "", errors.New("no file dialog in test builds")
}
