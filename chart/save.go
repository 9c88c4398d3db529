package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/sartorproj/econseries/stats"
	"github.com/sartorproj/econseries/timeseries"
)

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	JPEG
)

// Ext returns the file extension of the format, without the dot.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

func (f Format) encode(w io.Writer, img image.Image) error {
	if f == JPEG {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	}
	return png.Encode(w, img)
}

// SaveLines renders series as a line chart into dir, naming the file after
// opts.Title. An existing file of the same name is overwritten.
// It returns the written path.
func SaveLines(dir string, series *timeseries.Series, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := RenderLines(&buf, series, opts); err != nil {
		return "", err
	}
	return writeFile(dir, FileName(opts.Title, PNG.Ext()), buf.Bytes())
}

// SaveCorrelogram renders an ACF result into dir as a JPEG named after opts.Title.
func SaveCorrelogram(dir string, result *stats.ACFResult, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := RenderCorrelogram(&buf, result, opts, JPEG); err != nil {
		return "", fmt.Errorf("encode correlogram %q: %w", opts.Title, err)
	}
	return writeFile(dir, FileName(opts.Title, JPEG.Ext()), buf.Bytes())
}

func writeFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
