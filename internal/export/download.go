// Package export hands print-ready design files to a download side effect.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"print-studio/internal/catalog"
	"print-studio/internal/dataurl"
)

// Filename returns the download name for a print-ready export:
// <kind>-design-<variantID>-<timestamp>.png
func Filename(v *catalog.Variant, now time.Time) string {
	return fmt.Sprintf("%s-design-%s-%d.png", v.Kind, v.ID, now.UnixMilli())
}

// WritePrintReady decodes a print-ready data URL and writes it as a PNG into
// dir, returning the written path. The PNG payload is written as-is; the
// data URL already holds the physical-resolution export.
func WritePrintReady(dir string, v *catalog.Variant, designDataURL string, now time.Time) (string, error) {
	if !dataurl.IsDataURL(designDataURL) {
		return "", fmt.Errorf("export: not an image data URL")
	}
	raw, err := decodePayload(designDataURL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: failed to create download directory: %w", err)
	}

	path := filepath.Join(dir, Filename(v, now))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("export: failed to write file: %w", err)
	}
	return path, nil
}

// decodePayload extracts the raw PNG bytes from the data URL without
// re-encoding the raster.
func decodePayload(url string) ([]byte, error) {
	idx := strings.Index(url, "base64,")
	if idx < 0 {
		return nil, fmt.Errorf("export: malformed data URL")
	}
	return dataurl.DecodeBase64(url[idx+len("base64,"):])
}
