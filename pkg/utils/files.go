package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned by LoadFile for an archive holding no files.
var ErrEmptyArchive = errors.New("archive contains no files")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip and .7z) have their first file extracted, any other
// extension besides .gz is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var decoder io.ReadCloser
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				decoder, err = f.Open()
				break
			}
		}
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				decoder, err = f.Open()
				break
			}
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	if decoder == nil {
		return nil, fmt.Errorf("loading %s: %w", filename, ErrEmptyArchive)
	}
	defer decoder.Close()

	// read the decompressed data into a byte slice
	data, err = io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	return data, nil
}

// SaveFile writes data to filename, creating or truncating it.
func SaveFile(filename string, data []byte) error {
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	return nil
}
