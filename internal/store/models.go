// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "time"

type User struct {
	ID           int64      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         string     `db:"role" json:"role"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type Template struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	Layout      string    `db:"layout" json:"layout"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Block struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Type      string    `db:"type" json:"type"`
	Content   string    `db:"content" json:"content"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Page struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Slug            string     `db:"slug" json:"slug"`
	Content         string     `db:"content" json:"content"`
	TemplateID      *int64     `db:"template_id" json:"template_id,omitempty"`
	BlockIDs        IDList     `db:"block_ids" json:"block_ids"`
	MetaTitle       string     `db:"meta_title" json:"meta_title"`
	MetaDescription string     `db:"meta_description" json:"meta_description"`
	Status          string     `db:"status" json:"status"`
	PublishedAt     *time.Time `db:"published_at" json:"published_at,omitempty"`
	ScheduledAt     *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

type PageVersion struct {
	ID        int64     `db:"id" json:"id"`
	PageID    int64     `db:"page_id" json:"page_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Status    string    `db:"status" json:"status"`
	ChangedBy *int64    `db:"changed_by" json:"changed_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Post struct {
	ID            int64      `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Slug          string     `db:"slug" json:"slug"`
	Excerpt       string     `db:"excerpt" json:"excerpt"`
	Content       string     `db:"content" json:"content"`
	Category      string     `db:"category" json:"category"`
	Tags          string     `db:"tags" json:"tags"`
	CoverImageURL string     `db:"cover_image_url" json:"cover_image_url"`
	AuthorName    string     `db:"author_name" json:"author_name"`
	Status        string     `db:"status" json:"status"`
	PublishedAt   *time.Time `db:"published_at" json:"published_at,omitempty"`
	ScheduledAt   *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

type Redirect struct {
	ID        int64     `db:"id" json:"id"`
	FromPath  string    `db:"from_path" json:"from_path"`
	ToPath    string    `db:"to_path" json:"to_path"`
	Code      int       `db:"code" json:"code"`
	Enabled   bool      `db:"enabled" json:"enabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Theme struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	PrimaryColor    string    `db:"primary_color" json:"primary_color"`
	SecondaryColor  string    `db:"secondary_color" json:"secondary_color"`
	AccentColor     string    `db:"accent_color" json:"accent_color"`
	BackgroundColor string    `db:"background_color" json:"background_color"`
	TextColor       string    `db:"text_color" json:"text_color"`
	FontFamily      string    `db:"font_family" json:"font_family"`
	BorderRadius    string    `db:"border_radius" json:"border_radius"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type Testimonial struct {
	ID          int64     `db:"id" json:"id"`
	AuthorName  string    `db:"author_name" json:"author_name"`
	Location    string    `db:"location" json:"location"`
	Quote       string    `db:"quote" json:"quote"`
	Rating      int       `db:"rating" json:"rating"`
	ServiceSlug string    `db:"service_slug" json:"service_slug"`
	Publish     bool      `db:"publish" json:"publish"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Project struct {
	ID             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Slug           string     `db:"slug" json:"slug"`
	ClientName     string     `db:"client_name" json:"client_name"`
	County         string     `db:"county" json:"county"`
	ServiceSlug    string     `db:"service_slug" json:"service_slug"`
	Acreage        string     `db:"acreage" json:"acreage"`
	Description    string     `db:"description" json:"description"`
	BeforeImageURL string     `db:"before_image_url" json:"before_image_url"`
	AfterImageURL  string     `db:"after_image_url" json:"after_image_url"`
	Stage          string     `db:"stage" json:"stage"`
	Status         string     `db:"status" json:"status"`
	LeadID         *int64     `db:"lead_id" json:"lead_id,omitempty"`
	CompletedAt    *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

type Lead struct {
	ID        int64      `db:"id" json:"id"`
	Reference string     `db:"reference" json:"reference"`
	Name      string     `db:"name" json:"name"`
	Email     string     `db:"email" json:"email"`
	Phone     string     `db:"phone" json:"phone"`
	County    string     `db:"county" json:"county"`
	Services  StringList `db:"services" json:"services"`
	Timeline  string     `db:"timeline" json:"timeline"`
	Acreage   string     `db:"acreage" json:"acreage"`
	Message   string     `db:"message" json:"message"`
	Status    string     `db:"status" json:"status"`
	Notes     string     `db:"notes" json:"notes"`
	IPAddress string     `db:"ip_address" json:"ip_address"`
	Device    string     `db:"device" json:"device"`
	Country   string     `db:"country" json:"country"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

type Media struct {
	ID           int64      `db:"id" json:"id"`
	UUID         string     `db:"uuid" json:"uuid"`
	Filename     string     `db:"filename" json:"filename"`
	OriginalName string     `db:"original_name" json:"original_name"`
	MimeType     string     `db:"mime_type" json:"mime_type"`
	Size         int64      `db:"size" json:"size"`
	Width        int        `db:"width" json:"width"`
	Height       int        `db:"height" json:"height"`
	AltText      string     `db:"alt_text" json:"alt_text"`
	TakenAt      *time.Time `db:"taken_at" json:"taken_at,omitempty"`
	UploadedBy   *int64     `db:"uploaded_by" json:"uploaded_by,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type Event struct {
	ID         int64     `db:"id" json:"id"`
	Level      string    `db:"level" json:"level"`
	Category   string    `db:"category" json:"category"`
	Message    string    `db:"message" json:"message"`
	UserID     *int64    `db:"user_id" json:"user_id,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	RequestURL string    `db:"request_url" json:"request_url"`
	Metadata   string    `db:"metadata" json:"metadata"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
