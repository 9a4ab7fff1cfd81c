// Package imaging validates uploaded profile images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Validate sniffs the actual MIME type from the bytes (not trusting client
// headers) and confirms the data decodes as an image of that format.
// It returns the detected MIME type.
func Validate(data []byte) (string, error) {
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return "", fmt.Errorf("unsupported image format: %s (only JPEG, PNG, GIF, and WebP accepted)", detected)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	return detected, nil
}

// maxExtensionLen caps how long a client-supplied extension may be before
// the generic fallback kicks in.
const maxExtensionLen = 6

// SafeExtension returns a sanitized lowercase extension derived from the
// client-supplied filename, for use in a generated stored filename. Missing,
// unreasonably long, or non-alphanumeric extensions fall back to "bin" so a
// client filename can never inject a path or an unexpected extension.
func SafeExtension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" || len(ext) > maxExtensionLen {
		return "bin"
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "bin"
		}
	}
	return ext
}
