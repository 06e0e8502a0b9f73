package services

import (
	"errors"
	"fmt"
	"time"

	"civireport/entity"
	"civireport/repository"

	"gorm.io/gorm"
)

type ReportService struct {
	db      *gorm.DB
	reports *repository.ReportRepository
	admins  *AdministratorService
}

func NewReportService(db *gorm.DB, reports *repository.ReportRepository, admins *AdministratorService) *ReportService {
	return &ReportService{db: db, reports: reports, admins: admins}
}

// CreateReportInput is the report creation payload.
type CreateReportInput struct {
	Title       string
	Description string
	Category    entity.Category
	CreatedBy   uint
	LocationID  *uint
	ImageURL    *string
}

// Create validates the payload and inserts the report together with the
// reporter's total_reports bump in a single transaction, so neither can
// land without the other.
func (s *ReportService) Create(in CreateReportInput) (*entity.Report, error) {
	if in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrInvalid)
	}
	if in.CreatedBy == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalid)
	}
	if in.Category == "" {
		in.Category = entity.CategoryOther
	}
	if !entity.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrInvalid, in.Category)
	}

	report := &entity.Report{
		Title:       in.Title,
		Description: in.Description,
		Status:      entity.StatusOpen,
		Category:    in.Category,
		CreatedBy:   in.CreatedBy,
		LocationID:  in.LocationID,
		ImageURL:    in.ImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.reports.Create(tx, report); err != nil {
			return err
		}
		return s.reports.IncrementUserReports(tx, in.CreatedBy)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Get(id uint) (*entity.Report, error) {
	report, err := s.reports.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

// ReportUpdate is the explicit partial-update contract: every optional
// field maps to one named column setter, nothing else can be touched.
// The rating counter in particular is owned by the toggle subsystem and
// has no setter here.
type ReportUpdate struct {
	Title       *string
	Description *string
	Status      *entity.Status
	Category    *entity.Category
	ValidatedBy *uint
	ResolvedBy  *uint
	ResolvedAt  *time.Time
	LocationID  *uint
	ImageURL    *string
}

func (u ReportUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.Category != nil {
		cols["category"] = *u.Category
	}
	if u.ValidatedBy != nil {
		cols["validated_by"] = *u.ValidatedBy
	}
	if u.ResolvedBy != nil {
		cols["resolved_by"] = *u.ResolvedBy
	}
	if u.ResolvedAt != nil {
		cols["resolved_at"] = *u.ResolvedAt
	}
	if u.LocationID != nil {
		cols["location"] = *u.LocationID
	}
	if u.ImageURL != nil {
		cols["image_url"] = *u.ImageURL
	}
	return cols
}

func (s *ReportService) Update(id uint, upd ReportUpdate) (*entity.Report, error) {
	if upd.Status != nil && !entity.ValidStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalid, *upd.Status)
	}
	if upd.Category != nil && !entity.ValidCategory(*upd.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrInvalid, *upd.Category)
	}

	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	report, err := s.reports.Update(id, upd.columns())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *ReportService) Delete(id uint) error {
	deleted, err := s.reports.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Validate moves an open report to in_progress and records which admin
// validated it.
func (s *ReportService) Validate(reportID, adminID uint) (*entity.Report, error) {
	return s.ChangeStatus(reportID, entity.StatusInProgress, adminID)
}

// Resolve closes out a report: resolver and resolution time come from
// the server, never the client.
func (s *ReportService) Resolve(reportID, adminID uint) (*entity.Report, error) {
	return s.ChangeStatus(reportID, entity.StatusResolved, adminID)
}

// ChangeStatus is the admin-driven status write. Audit fields follow the
// target state: in_progress stamps validated_by, resolved stamps
// resolved_by and resolved_at, everything else is a bare status write.
// Every move away from resolved clears resolved_at so the timestamp only
// ever exists on resolved reports.
func (s *ReportService) ChangeStatus(reportID uint, status entity.Status, adminID uint) (*entity.Report, error) {
	if !entity.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalid, status)
	}
	if adminID == 0 {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalid)
	}

	if _, err := s.Get(reportID); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": status}
	switch status {
	case entity.StatusInProgress:
		updates["validated_by"] = adminID
		updates["resolved_at"] = nil
	case entity.StatusResolved:
		updates["resolved_by"] = adminID
		updates["resolved_at"] = time.Now()
	default:
		updates["resolved_at"] = nil
	}

	report, err := s.reports.Update(reportID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

// ReportPage is one page of reports plus the pagination envelope numbers.
type ReportPage struct {
	Reports    []entity.Report
	TotalCount int64
	TotalPages int
	Page       int
}

func page(reports []entity.Report, total int64, pageNum, limit int) *ReportPage {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ReportPage{Reports: reports, TotalCount: total, TotalPages: totalPages, Page: pageNum}
}

// List returns a page of reports, restricted to the admin's allowed
// categories when adminID names a department administrator.
func (s *ReportService) List(pageNum, limit int, sort string, adminID uint) (*ReportPage, error) {
	allowed, err := s.admins.AllowedCategoriesFor(adminID)
	if err != nil {
		return nil, err
	}

	offset := (pageNum - 1) * limit
	reports, total, err := s.reports.List(repository.ReportFilter{Allowed: allowed}, limit, offset, sort)
	if err != nil {
		return nil, err
	}
	return page(reports, total, pageNum, limit), nil
}

// SearchInput is the unified search/filter request.
type SearchInput struct {
	Query    string
	Status   entity.Status
	Category entity.Category
	Sort     string
	AdminID  uint
}

// Search handles free-text search, status/category filters and any
// combination, always AND-ed with the admin category restriction.
func (s *ReportService) Search(in SearchInput, pageNum, limit int) (*ReportPage, error) {
	if in.Query == "" && in.Status == "" && in.Category == "" {
		return nil, fmt.Errorf("%w: provide at least one of: q, status, category", ErrInvalid)
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalid, in.Status)
	}
	if in.Category != "" && !entity.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", ErrInvalid, in.Category)
	}

	allowed, err := s.admins.AllowedCategoriesFor(in.AdminID)
	if err != nil {
		return nil, err
	}

	offset := (pageNum - 1) * limit
	reports, total, err := s.reports.List(repository.ReportFilter{
		Query:    in.Query,
		Status:   in.Status,
		Category: in.Category,
		Allowed:  allowed,
	}, limit, offset, in.Sort)
	if err != nil {
		return nil, err
	}
	return page(reports, total, pageNum, limit), nil
}

func (s *ReportService) ListByUser(userID uint, pageNum, limit int, sort string) (*ReportPage, error) {
	offset := (pageNum - 1) * limit
	reports, total, err := s.reports.ListByUser(userID, limit, offset, sort)
	if err != nil {
		return nil, err
	}
	return page(reports, total, pageNum, limit), nil
}

func (s *ReportService) ListPending(pageNum, limit int, sort string) (*ReportPage, error) {
	offset := (pageNum - 1) * limit
	reports, total, err := s.reports.ListPending(limit, offset, sort)
	if err != nil {
		return nil, err
	}
	return page(reports, total, pageNum, limit), nil
}

func (s *ReportService) ListAssigned(adminID uint, pageNum, limit int, sort string) (*ReportPage, error) {
	offset := (pageNum - 1) * limit
	reports, total, err := s.reports.ListAssigned(adminID, limit, offset, sort)
	if err != nil {
		return nil, err
	}
	return page(reports, total, pageNum, limit), nil
}
