// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded photos: EXIF orientation is applied,
// metadata is stripped, and resized variants are written next to the original.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/util"
)

// Directory names under the upload root.
const (
	Originals = "originals"
	Thumbnail = "thumb"
	Large     = "large"
)

// Variant describes one resized rendition.
type Variant struct {
	Name    string
	Width   int
	Height  int
	Crop    bool
	Quality int
}

// Variants produced for every image upload.
var Variants = []Variant{
	{Name: Thumbnail, Width: 400, Height: 300, Crop: true, Quality: 82},
	{Name: Large, Width: 1600, Height: 1200, Quality: 88},
}

// ErrUnsupported is returned for data that is not a JPEG, PNG, GIF or WebP image.
var ErrUnsupported = errors.New("unsupported image format")

// Result describes a processed original.
type Result struct {
	Width    int
	Height   int
	MimeType string
	Size     int64
	Path     string
	TakenAt  *time.Time
}

// Processor writes images below Dir.
type Processor struct {
	Dir string
}

func NewProcessor(dir string) *Processor {
	return &Processor{Dir: dir}
}

// Process decodes data, applies the EXIF orientation, re-encodes without
// metadata and stores it as originals/<id>/<filename>.
func (p *Processor) Process(data []byte, id, filename string) (*Result, error) {
	format := DetectFormat(data)
	if format == "" {
		return nil, ErrUnsupported
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	meta := readExif(data)
	img = orient(img, meta.orientation)

	out, err := encode(img, format, 92)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	path, err := p.write(Originals, id, filename, out)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Result{
		Width:    b.Dx(),
		Height:   b.Dy(),
		MimeType: MimeType(format),
		Size:     int64(len(out)),
		Path:     path,
		TakenAt:  meta.takenAt,
	}, nil
}

// Variants renders every configured variant from the stored original.
// Variants larger than the source are skipped unless they crop.
func (p *Processor) Variants(src, id, filename string) ([]string, error) {
	img, err := imaging.Open(src)
	if err != nil {
		return nil, fmt.Errorf("opening original: %w", err)
	}
	format := formatFromName(filename)

	var written []string
	var errs []error
	for _, v := range Variants {
		b := img.Bounds()
		if !v.Crop && b.Dx() <= v.Width && b.Dy() <= v.Height {
			continue
		}
		var resized image.Image
		if v.Crop {
			resized = imaging.Fill(img, v.Width, v.Height, imaging.Center, imaging.Lanczos)
		} else {
			resized = imaging.Fit(img, v.Width, v.Height, imaging.Lanczos)
		}
		out, err := encode(resized, format, v.Quality)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.Name, err))
			continue
		}
		if _, err := p.write(v.Name, id, filename, out); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.Name, err))
			continue
		}
		written = append(written, v.Name)
	}
	return written, errors.Join(errs...)
}

// Remove deletes the original and every variant for id.
func (p *Processor) Remove(id string) error {
	dirs := []string{Originals}
	for _, v := range Variants {
		dirs = append(dirs, v.Name)
	}
	var errs []error
	for _, d := range dirs {
		path, err := util.SafeJoinPath(p.Dir, d, id)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SaveRaw stores a non-image file unchanged.
func (p *Processor) SaveRaw(data []byte, id, filename string) (string, error) {
	return p.write(Originals, id, filename, data)
}

func (p *Processor) write(kind, id, filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	dir, err := util.SafeJoinPath(p.Dir, kind, id)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", kind, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", kind, err)
	}
	return path, nil
}

type exifMeta struct {
	orientation int
	takenAt     *time.Time
}

func readExif(data []byte) exifMeta {
	meta := exifMeta{orientation: 1}
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return meta
	}
	if tag, err := x.Get(exif.Orientation); err == nil {
		if o, err := tag.Int(0); err == nil {
			meta.orientation = o
		}
	}
	if t, err := x.DateTime(); err == nil && !t.IsZero() {
		t = t.UTC()
		meta.takenAt = &t
	}
	return meta
}

// orient undoes the camera rotation recorded in EXIF tag 0x0112.
func orient(img image.Image, o int) image.Image {
	switch o {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}

// encode writes img in format. WebP has no pure Go encoder, so it becomes JPEG.
func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	return buf.Bytes(), err
}

// DetectFormat sniffs data. TIFF is refused outright.
func DetectFormat(data []byte) string {
	ct := http.DetectContentType(data)
	switch {
	case strings.Contains(ct, "tiff"):
		return ""
	case strings.Contains(ct, "jpeg"):
		return "jpeg"
	case strings.Contains(ct, "png"):
		return "png"
	case strings.Contains(ct, "gif"):
		return "gif"
	case strings.Contains(ct, "webp"):
		return "webp"
	}
	return ""
}

// MimeType maps a sniffed format to its MIME type.
func MimeType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	}
	return "application/octet-stream"
}

func formatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	}
	return "jpeg"
}

// IsImage reports whether mime is a type Process accepts.
func IsImage(mime string) bool {
	switch mime {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}
