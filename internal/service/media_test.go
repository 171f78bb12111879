// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/imaging"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{G: 120, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode(&buf, img): %v", err)
	}
	return buf.Bytes()
}

func TestMediaUploadImage(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	m, err := s.Media.Upload(ctx, bytes.NewReader(pngBytes(t, 40, 30)), "Back Forty (after).PNG")
	if err != nil {
		t.Fatalf("Media.Upload: %v", err)
	}
	if m.MimeType != "image/png" {
		t.Errorf("m.MimeType = %q, want %q", m.MimeType, "image/png")
	}
	if m.Width != 40 {
		t.Errorf("m.Width = %v, want %v", m.Width, 40)
	}
	if m.Filename != "back-forty-after.png" {
		t.Errorf("m.Filename = %q, want %q", m.Filename, "back-forty-after.png")
	}
	if m.URL != "/uploads/originals/"+m.UUID+"/back-forty-after.png" {
		t.Errorf("m.URL = %q, want %q", m.URL, "/uploads/originals/"+m.UUID+"/back-forty-after.png")
	}
	if m.ThumbnailURL != "/uploads/thumb/"+m.UUID+"/back-forty-after.png" {
		t.Errorf("m.ThumbnailURL = %q, want %q", m.ThumbnailURL, "/uploads/thumb/"+m.UUID+"/back-forty-after.png")
	}

	_, err = os.Stat(filepath.Join(s.Media.Dir(), imaging.Thumbnail, m.UUID, m.Filename))
	if err != nil {
		t.Errorf("os.Stat: %v", err)
	}

	m, err = s.Media.UpdateAlt(ctx, m.ID, " Cleared pasture ")
	if err != nil {
		t.Fatalf("Media.UpdateAlt: %v", err)
	}
	if m.AltText != "Cleared pasture" {
		t.Errorf("m.AltText = %q, want %q", m.AltText, "Cleared pasture")
	}

	if err := s.Media.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Media.Delete: %v", err)
	}
	_, err = os.Stat(filepath.Join(s.Media.Dir(), imaging.Originals, m.UUID))
	if !os.IsNotExist(err) {
		t.Errorf("original still on disk after Delete: stat err = %v", err)
	}
	_, err = s.Media.Get(ctx, m.ID)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want %v", err, model.ErrNotFound)
	}
}

func TestMediaUploadRejects(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.Media.Upload(ctx, strings.NewReader(""), "empty.jpg")
	requireFields(t, err, "file")

	_, err = s.Media.Upload(ctx, strings.NewReader("#!/bin/sh\necho hi\n"), "run.sh")
	requireFields(t, err, "file")

	_, err = s.Media.UpdateAlt(ctx, 1, strings.Repeat("a", 301))
	requireFields(t, err, "alt_text")
}

func TestMediaUploadPDF(t *testing.T) {
	s := newTestServices(t)

	m, err := s.Media.Upload(context.Background(), strings.NewReader("%PDF-1.4\n%âãÏÓ\n1 0 obj\n"), "estimate.pdf")
	if err != nil {
		t.Fatalf("Media.Upload: %v", err)
	}
	if m.MimeType != "application/pdf" {
		t.Errorf("m.MimeType = %q, want %q", m.MimeType, "application/pdf")
	}
	if len(m.ThumbnailURL) != 0 {
		t.Errorf("m.ThumbnailURL = %v, want empty", m.ThumbnailURL)
	}
}
