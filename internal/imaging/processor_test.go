// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessStoresOriginal(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	res, err := p.Process(testPNG(t, 64, 48), "abc", "field.png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Width != 64 || res.Height != 48 {
		t.Errorf("dimensions = %dx%d", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType = %q", res.MimeType)
	}
	if res.TakenAt != nil {
		t.Errorf("TakenAt = %v, want nil for a PNG without EXIF", res.TakenAt)
	}
	if _, err := os.Stat(filepath.Join(dir, Originals, "abc", "field.png")); err != nil {
		t.Errorf("original not written: %v", err)
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(t.TempDir())
	_, err := p.Process([]byte("%PDF-1.4 not an image"), "x", "doc.pdf")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestVariantsAndRemove(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)
	res, err := p.Process(testPNG(t, 800, 600), "id1", "site.png")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	written, err := p.Variants(res.Path, "id1", "site.png")
	if err != nil {
		t.Fatalf("Variants: %v", err)
	}
	// 800x600 fits inside the large bounds, so only the cropped thumbnail is made.
	if len(written) != 1 || written[0] != Thumbnail {
		t.Errorf("written = %v, want [thumb]", written)
	}
	if _, err := os.Stat(filepath.Join(dir, Thumbnail, "id1", "site.png")); err != nil {
		t.Errorf("thumbnail missing: %v", err)
	}

	if err := p.Remove("id1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, Originals, "id1")); !os.IsNotExist(err) {
		t.Errorf("original dir still present: %v", err)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.SaveRaw([]byte("x"), "../../etc", "passwd"); err == nil {
		t.Error("expected traversal to be rejected")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", testPNG(t, 2, 2), "png"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}, "jpeg"},
		{"gif", []byte("GIF89a......"), "gif"},
		{"tiff", []byte{'I', 'I', 42, 0, 8, 0, 0, 0}, ""},
		{"text", []byte("hello"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/webp") || IsImage("application/pdf") {
		t.Error("IsImage misclassified")
	}
}
