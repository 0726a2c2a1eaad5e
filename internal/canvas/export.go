package canvas

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"
)

// DefaultExt is appended to export paths that have no extension.
const DefaultExt = ".png"

// ErrExport is returned when the canvas cannot be written to disk.
var ErrExport = errors.New("export failed")

// ErrUnsupportedFormat is wrapped alongside ErrExport when the extension is not lossless.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// losslessExts are the formats Export accepts; each reproduces the buffer exactly.
var losslessExts = map[string]bool{
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Export writes the buffer to path and returns the path actually written. A path without
// extension gets DefaultExt. Lossy formats are refused.
func (c *Canvas) Export(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrExport)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		path += DefaultExt
		ext = DefaultExt
	}
	if !losslessExts[ext] {
		return "", fmt.Errorf("%w: %w %q", ErrExport, ErrUnsupportedFormat, ext)
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExport, err)
	} else if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrExport, dir)
	}

	if ok := gocv.IMWrite(path, c.buf); !ok {
		return "", fmt.Errorf("%w: could not write %s", ErrExport, path)
	}
	return path, nil
}
