// Package lastregion remembers the most recent selection between runs.
package lastregion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"regionshot/src/geometry"
)

// FileName is the name of the file in the user cache directory.
const FileName = "regionshot-last-region.txt"

// Path returns <xdg cache>/regionshot-last-region.txt.
func Path() string {
	return filepath.Join(xdg.CacheHome, FileName)
}

// Read parses the region stored at path. A missing file is reported with an
// error matching fs.ErrNotExist.
func Read(path string) (geometry.Rect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("read last region: %w", err)
	}
	r, err := geometry.ParseRect(strings.TrimSpace(string(data)))
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("last region in %s: %w", path, err)
	}
	return r, nil
}

// Write stores r at path in the WxH+X+Y format.
func Write(path string, r geometry.Rect) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(r.String()), 0o644); err != nil {
		return fmt.Errorf("write last region: %w", err)
	}
	return nil
}
