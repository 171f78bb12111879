// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/marketing"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/util"
)

const exportBatch = 500

// CountryResolver maps a client IP to an ISO country code.
type CountryResolver interface {
	Country(ip string) string
}

// LeadDeps are the lead-specific collaborators.
type LeadDeps struct {
	Catalog   *marketing.Catalog
	Countries CountryResolver
}

// LeadFilter narrows LeadService.List and Export.
type LeadFilter struct {
	ListParams
	Status  string `json:"status,omitempty"`
	County  string `json:"county,omitempty"`
	Service string `json:"service,omitempty"`
}

// QuoteRequest is the public quote form.
type QuoteRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	County   string   `json:"county"`
	Services []string `json:"services"`
	Timeline string   `json:"timeline"`
	Acreage  string   `json:"acreage"`
	Message  string   `json:"message"`
}

// Client describes who submitted a quote request.
type Client struct {
	IP        string
	UserAgent string
}

// LeadPatch carries the staff-editable fields.
type LeadPatch struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// StatusCount is one column of the pipeline board.
type StatusCount struct {
	Status model.LeadStatus `json:"status"`
	Count  int64            `json:"count"`
}

// LeadStats summarizes the pipeline.
type LeadStats struct {
	Total    int64         `json:"total"`
	ByStatus []StatusCount `json:"by_status"`
}

// LeadService owns quote intake and the sales pipeline.
type LeadService struct {
	Deps
	catalog   *marketing.Catalog
	countries CountryResolver
	projects  *ProjectService
}

func NewLeadService(d Deps, ld LeadDeps) *LeadService {
	return &LeadService{
		Deps:      d,
		catalog:   ld.Catalog,
		countries: ld.Countries,
		projects:  &ProjectService{Deps: d},
	}
}

func (s *LeadService) List(ctx context.Context, f LeadFilter) (ListResult[store.Lead], error) {
	f.ListParams = f.Normalize()
	return cachedList(ctx, s.Deps, EntityLeads, f, f.ListParams, func() ([]store.Lead, int64, error) {
		return s.Queries.ListLeads(ctx, f.toStore(f.storePage()))
	})
}

func (f LeadFilter) toStore(p store.Window) store.LeadFilter {
	return store.LeadFilter{Status: f.Status, County: f.County, Service: f.Service, Search: strings.TrimSpace(f.Search), Window: p}
}

func (s *LeadService) Get(ctx context.Context, id int64) (store.Lead, error) {
	l, err := s.Queries.GetLeadByID(ctx, id)
	return l, translate(err, "lead")
}

// Create validates a quote request and stores it as a New lead.
func (s *LeadService) Create(ctx context.Context, in QuoteRequest, client Client) (store.Lead, error) {
	l, err := s.normalize(in)
	if err != nil {
		return store.Lead{}, err
	}
	l.Reference = newReference()
	l.Status = string(model.LeadNew)
	l.IPAddress = client.IP
	l.Device = deviceClass(client.UserAgent)
	if s.countries != nil {
		l.Country = s.countries.Country(client.IP)
	}

	created, err := s.Queries.CreateLead(ctx, l)
	if err != nil {
		return store.Lead{}, fmt.Errorf("creating lead: %w", err)
	}
	s.invalidate(ctx, EntityLeads)
	s.logger().Info("quote request received",
		"category", model.EventCategoryLead,
		"reference", created.Reference,
		"county", created.County,
		"services", strings.Join(created.Services, ","))
	return created, nil
}

func (s *LeadService) normalize(in QuoteRequest) (store.Lead, error) {
	l := store.Lead{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Timeline: strings.TrimSpace(in.Timeline),
		Acreage:  strings.TrimSpace(in.Acreage),
		Message:  strings.TrimSpace(in.Message),
	}

	c := newChecker()
	c.required("name", l.Name)
	c.maxLen("name", l.Name, 120)
	if l.Email == "" && l.Phone == "" {
		c.Add("email", "email or phone is required")
	}
	c.email("email", l.Email)
	if l.Phone != "" && countDigits(l.Phone) < 7 {
		c.Add("phone", "invalid phone number")
	}
	c.maxLen("message", l.Message, 4000)

	if area, ok := s.lookupArea(in.County); ok {
		l.County = area.County
	} else {
		c.Add("county", "choose a county we serve")
	}

	seen := make(map[string]bool)
	for _, slug := range in.Services {
		slug = strings.TrimSpace(slug)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		if _, ok := s.catalog.Service(slug); !ok {
			c.Add("services", fmt.Sprintf("unknown service %q", slug))
			continue
		}
		l.Services = append(l.Services, slug)
	}
	if len(l.Services) == 0 {
		c.Add("services", "choose at least one service")
	}
	if _, ok := model.Timelines[l.Timeline]; !ok {
		c.Add("timeline", "choose a timeline")
	}
	return l, c.OrNil()
}

func (s *LeadService) lookupArea(county string) (marketing.Area, bool) {
	if a, ok := s.catalog.Area(strings.TrimSpace(county)); ok {
		return a, true
	}
	return s.catalog.County(county)
}

// Update applies a staff edit to status and notes.
func (s *LeadService) Update(ctx context.Context, id int64, patch LeadPatch) (store.Lead, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return store.Lead{}, err
	}

	c := newChecker()
	if patch.Status != nil {
		next, ok := ParseLeadStatus(*patch.Status)
		if !ok {
			c.Add("status", "unknown lead status")
		} else if !model.LeadStatus(l.Status).CanTransition(next) {
			c.Add("status", fmt.Sprintf("cannot move from %s to %s", l.Status, next))
		} else {
			l.Status = string(next)
		}
	}
	if patch.Notes != nil {
		l.Notes = strings.TrimSpace(*patch.Notes)
		c.maxLen("notes", l.Notes, 10000)
	}
	if err := c.OrNil(); err != nil {
		return store.Lead{}, err
	}

	updated, err := s.Queries.UpdateLeadPipeline(ctx, l)
	if err != nil {
		return store.Lead{}, translate(err, "updating lead")
	}
	s.invalidate(ctx, EntityLeads)
	return updated, nil
}

// UpdateStatus moves a lead to another pipeline column.
func (s *LeadService) UpdateStatus(ctx context.Context, id int64, status model.LeadStatus) (store.Lead, error) {
	st := string(status)
	return s.Update(ctx, id, LeadPatch{Status: &st})
}

// UpdateNotes replaces the staff notes on a lead.
func (s *LeadService) UpdateNotes(ctx context.Context, id int64, notes string) (store.Lead, error) {
	return s.Update(ctx, id, LeadPatch{Notes: &notes})
}

// Stats counts leads per status in board order.
func (s *LeadService) Stats(ctx context.Context) (LeadStats, error) {
	rows, err := s.Queries.CountLeadsByStatus(ctx)
	if err != nil {
		return LeadStats{}, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	var st LeadStats
	for _, status := range model.LeadStatuses {
		n := counts[string(status)]
		st.Total += n
		st.ByStatus = append(st.ByStatus, StatusCount{Status: status, Count: n})
	}
	return st, nil
}

var exportHeader = []string{
	"reference", "created_at", "name", "email", "phone", "county", "services",
	"timeline", "acreage", "status", "notes", "message", "device", "country",
}

// Export writes every lead matching f as CSV, ignoring pagination.
func (s *LeadService) Export(ctx context.Context, w io.Writer, f LeadFilter) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, err
	}

	written := 0
	for offset := 0; ; offset += exportBatch {
		leads, _, err := s.Queries.ListLeads(ctx, f.toStore(store.Window{Limit: exportBatch, Offset: offset}))
		if err != nil {
			return written, fmt.Errorf("exporting leads: %w", err)
		}
		for _, l := range leads {
			if err := cw.Write(exportRow(l)); err != nil {
				return written, err
			}
			written++
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return written, err
		}
		if len(leads) < exportBatch {
			return written, nil
		}
	}
}

func exportRow(l store.Lead) []string {
	row := []string{
		l.Reference,
		l.CreatedAt.UTC().Format(time.RFC3339),
		l.Name,
		l.Email,
		l.Phone,
		l.County,
		strings.Join(l.Services, "; "),
		l.Timeline,
		l.Acreage,
		l.Status,
		l.Notes,
		l.Message,
		l.Device,
		l.Country,
	}
	for i, v := range row {
		row[i] = csvSafe(v)
	}
	return row
}

// csvSafe neutralizes cells a spreadsheet would evaluate as formulas.
func csvSafe(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// ErrNotConvertible is returned when a lead cannot become a project.
var ErrNotConvertible = errors.New("only won leads can be converted")

// ConvertToProject opens a draft CRM project for a won lead.
func (s *LeadService) ConvertToProject(ctx context.Context, id int64) (store.Project, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return store.Project{}, err
	}
	if model.LeadStatus(l.Status) != model.LeadWon {
		ve := model.NewValidationError()
		ve.Add("status", ErrNotConvertible.Error())
		return store.Project{}, ve
	}
	if _, err := s.Queries.GetProjectByLead(ctx, id); err == nil {
		return store.Project{}, fmt.Errorf("lead %s already has a project: %w", l.Reference, model.ErrConflict)
	}

	serviceName, serviceSlug := "Project", ""
	if len(l.Services) > 0 {
		serviceSlug = l.Services[0]
		if svc, ok := s.catalog.Service(serviceSlug); ok {
			serviceName = svc.Name
		}
	}
	title := serviceName + " for " + l.Name
	leadID := l.ID
	return s.projects.Create(ctx, ProjectInput{
		Title:       title,
		Slug:        util.Slugify(title + " " + l.Reference),
		ClientName:  l.Name,
		County:      l.County,
		ServiceSlug: serviceSlug,
		Acreage:     l.Acreage,
		Description: l.Message,
		Stage:       model.StagePlanned,
		Status:      model.StatusDraft,
		LeadID:      &leadID,
	})
}

func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BW-" + strings.ToUpper(id[:8])
}

// deviceClass buckets a User-Agent header.
func deviceClass(ua string) string {
	if ua == "" {
		return "unknown"
	}
	p := useragent.Parse(ua)
	switch {
	case p.Bot:
		return "bot"
	case p.Tablet:
		return "tablet"
	case p.Mobile:
		return "mobile"
	case p.Desktop:
		return "desktop"
	}
	return "unknown"
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ParseLeadStatus accepts a status name in any case.
func ParseLeadStatus(s string) (model.LeadStatus, bool) {
	for _, st := range model.LeadStatuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}
