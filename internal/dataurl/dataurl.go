// Package dataurl encodes and decodes PNG images as data URLs.
package dataurl

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/jpeg"
)

const pngPrefix = "data:image/png;base64,"

// Encode encodes an image as a PNG data URL.
func Encode(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return pngPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode decodes a data URL back into an image. Both PNG and JPEG payloads
// are accepted.
func Decode(url string) (image.Image, error) {
	idx := strings.Index(url, "base64,")
	if !strings.HasPrefix(url, "data:image/") || idx < 0 {
		return nil, fmt.Errorf("not an image data URL")
	}

	raw, err := base64.StdEncoding.DecodeString(url[idx+len("base64,"):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// DecodeBase64 decodes a raw base64 payload (the part after "base64,").
func DecodeBase64(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return raw, nil
}

// IsDataURL reports whether the string looks like an image data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
