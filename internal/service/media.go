// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/imaging"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/util"
)

// Upload limits.
const (
	MaxUploadSize    = 20 << 20
	DefaultUploadDir = "./uploads"
	UploadURLPrefix  = "/uploads"
)

var allowedMime = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// MediaFilter narrows MediaService.List.
type MediaFilter struct {
	ListParams
	Type string `json:"type,omitempty"`
}

// MediaItem is a media row with its public URLs.
type MediaItem struct {
	store.Media
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// MediaService stores uploads on disk and tracks them in the media table.
type MediaService struct {
	Deps
	processor *imaging.Processor
}

func NewMediaService(d Deps, uploadDir string) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{Deps: d, processor: imaging.NewProcessor(uploadDir)}
}

// Dir is the upload root served under UploadURLPrefix.
func (s *MediaService) Dir() string {
	return s.processor.Dir
}

func (s *MediaService) List(ctx context.Context, f MediaFilter) (ListResult[MediaItem], error) {
	f.ListParams = f.Normalize()
	rows, total, err := s.Queries.ListMedia(ctx, store.MediaFilter{MimePrefix: f.Type, Search: f.Search, Window: f.storePage()})
	if err != nil {
		return ListResult[MediaItem]{}, fmt.Errorf("listing media: %w", err)
	}
	items := make([]MediaItem, len(rows))
	for i, m := range rows {
		items[i] = s.item(m)
	}
	return result(items, total, f.ListParams), nil
}

func (s *MediaService) Get(ctx context.Context, id int64) (MediaItem, error) {
	m, err := s.Queries.GetMediaByID(ctx, id)
	if err != nil {
		return MediaItem{}, translate(err, "media")
	}
	return s.item(m), nil
}

// Upload validates and stores one file. Images are re-encoded and get variants.
func (s *MediaService) Upload(ctx context.Context, r io.Reader, name string) (MediaItem, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return MediaItem{}, fmt.Errorf("reading upload: %w", err)
	}
	c := newChecker()
	if len(data) == 0 {
		c.Add("file", "file is empty")
	}
	if len(data) > MaxUploadSize {
		c.Add("file", fmt.Sprintf("file exceeds %d MB", MaxUploadSize>>20))
	}
	mime := sniff(data)
	if !allowedMime[mime] {
		c.Add("file", fmt.Sprintf("file type %s is not allowed", mime))
	}
	if err := c.OrNil(); err != nil {
		return MediaItem{}, err
	}

	id := uuid.NewString()
	filename := cleanFilename(name)
	m := store.Media{UUID: id, Filename: filename, OriginalName: filepath.Base(name), MimeType: mime, UploadedBy: ActorFrom(ctx)}

	if imaging.IsImage(mime) {
		res, err := s.processor.Process(data, id, filename)
		if err != nil {
			return MediaItem{}, fmt.Errorf("processing image: %w", err)
		}
		m.MimeType, m.Size, m.Width, m.Height, m.TakenAt = res.MimeType, res.Size, res.Width, res.Height, res.TakenAt
		if _, err := s.processor.Variants(res.Path, id, filename); err != nil {
			s.logger().Warn("failed to create image variants", "category", model.EventCategoryContent, "uuid", id, "error", err)
		}
	} else {
		if _, err := s.processor.SaveRaw(data, id, filename); err != nil {
			return MediaItem{}, err
		}
		m.Size = int64(len(data))
	}

	created, err := s.Queries.CreateMedia(ctx, m)
	if err != nil {
		_ = s.processor.Remove(id)
		return MediaItem{}, fmt.Errorf("creating media record: %w", err)
	}
	s.invalidate(ctx, EntityMedia)
	return s.item(created), nil
}

// UpdateAlt sets the alt text.
func (s *MediaService) UpdateAlt(ctx context.Context, id int64, alt string) (MediaItem, error) {
	alt = strings.TrimSpace(alt)
	c := newChecker()
	c.maxLen("alt_text", alt, 300)
	if err := c.OrNil(); err != nil {
		return MediaItem{}, err
	}
	m, err := s.Queries.UpdateMediaAlt(ctx, id, alt)
	if err != nil {
		return MediaItem{}, translate(err, "updating media")
	}
	s.invalidate(ctx, EntityMedia)
	return s.item(m), nil
}

// Delete removes the row, then the files. File errors are logged only.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	m, err := s.Queries.GetMediaByID(ctx, id)
	if err != nil {
		return translate(err, "media")
	}
	if err := s.Queries.DeleteMedia(ctx, id); err != nil {
		return translate(err, "deleting media")
	}
	if err := s.processor.Remove(m.UUID); err != nil && !os.IsNotExist(err) {
		s.logger().Warn("failed to delete media files", "category", model.EventCategoryContent, "media_id", id, "error", err)
	}
	s.invalidate(ctx, EntityMedia)
	return nil
}

func (s *MediaService) item(m store.Media) MediaItem {
	it := MediaItem{Media: m, URL: URL(m, imaging.Originals)}
	if imaging.IsImage(m.MimeType) {
		it.ThumbnailURL = URL(m, imaging.Thumbnail)
	}
	return it
}

// URL is the public path of a media file rendition.
func URL(m store.Media, kind string) string {
	return path.Join(UploadURLPrefix, kind, m.UUID, m.Filename)
}

func sniff(data []byte) string {
	if f := imaging.DetectFormat(data); f != "" {
		return imaging.MimeType(f)
	}
	ct := http.DetectContentType(data)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// cleanFilename keeps a readable, URL-safe version of the uploaded name.
func cleanFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	stem := util.Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "file"
	}
	if ext == "" {
		ext = ".bin"
	}
	return stem + ext
}
