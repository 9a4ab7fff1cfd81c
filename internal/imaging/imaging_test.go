package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return img
}

func createTestJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, testImage(w, h), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, testImage(w, h))
	return buf.Bytes()
}

func createTestGIF(w, h int) []byte {
	var buf bytes.Buffer
	gif.Encode(&buf, testImage(w, h), nil)
	return buf.Bytes()
}

func TestValidateAcceptedFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
	}{
		{"jpeg", createTestJPEG(10, 10), "image/jpeg"},
		{"png", createTestPNG(10, 10), "image/png"},
		{"gif", createTestGIF(10, 10), "image/gif"},
	}

	for _, tt := range tests {
		mime, err := Validate(tt.data)
		if err != nil {
			t.Errorf("Validate(%s): %v", tt.name, err)
			continue
		}
		if mime != tt.mime {
			t.Errorf("Validate(%s) mime = %q, want %q", tt.name, mime, tt.mime)
		}
	}
}

func TestValidateRejectsText(t *testing.T) {
	if _, err := Validate([]byte("definitely not an image")); err == nil {
		t.Error("expected error for text data")
	}
}

func TestValidateRejectsTruncatedImage(t *testing.T) {
	// Valid PNG magic bytes, but nothing decodable after them.
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00}
	if _, err := Validate(data); err == nil {
		t.Error("expected error for truncated image")
	}
}

func TestSafeExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.jpg", "jpg"},
		{"photo.JPEG", "jpeg"},
		{"archive.tar.gz", "gz"},
		{"noextension", "bin"},
		{"", "bin"},
		{"dots.", "bin"},
		{"evil.really-long-extension", "bin"},
		{"tricky.p/ng", "bin"},
		{"space.p g", "bin"},
		{"upper.PNG", "png"},
	}

	for _, tt := range tests {
		if got := SafeExtension(tt.filename); got != tt.want {
			t.Errorf("SafeExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
