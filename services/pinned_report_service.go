package services

import (
	"errors"

	"civireport/entity"
	"civireport/repository"

	"gorm.io/gorm"
)

type PinnedReportService struct {
	pins    *repository.PinnedReportRepository
	reports *ReportService
	users   *repository.UserRepository
}

func NewPinnedReportService(pins *repository.PinnedReportRepository, reports *ReportService, users *repository.UserRepository) *PinnedReportService {
	return &PinnedReportService{pins: pins, reports: reports, users: users}
}

// PinResult is the pin outcome; AlreadyPinned distinguishes the
// idempotent no-op from a fresh insert.
type PinResult struct {
	Pin           *entity.PinnedReport `json:"pin"`
	AlreadyPinned bool                 `json:"already_pinned"`
}

// Pin bookmarks the report for the user. Pinning twice is a no-op, not
// an error.
func (s *PinnedReportService) Pin(userID, reportID uint) (*PinResult, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.reports.Get(reportID); err != nil {
		return nil, err
	}

	already, err := s.pins.IsPinned(userID, reportID)
	if err != nil {
		return nil, err
	}
	pin, err := s.pins.Pin(userID, reportID)
	if err != nil {
		return nil, err
	}
	return &PinResult{Pin: pin, AlreadyPinned: already}, nil
}

func (s *PinnedReportService) Unpin(userID, reportID uint) error {
	deleted, err := s.pins.Unpin(userID, reportID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *PinnedReportService) IsPinned(userID, reportID uint) (bool, error) {
	return s.pins.IsPinned(userID, reportID)
}

// PinnedPage is one page of pinned-report rows.
type PinnedPage struct {
	Items      []repository.PinnedReportDetail
	TotalCount int64
	TotalPages int
	Page       int
}

func (s *PinnedReportService) ListByUser(userID uint, pageNum, limit int) (*PinnedPage, error) {
	offset := (pageNum - 1) * limit
	rows, total, err := s.pins.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PinnedPage{Items: rows, TotalCount: total, TotalPages: totalPages, Page: pageNum}, nil
}

func (s *PinnedReportService) Detail(userID, reportID uint) (*repository.PinnedReportDetail, error) {
	row, err := s.pins.Detail(userID, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}
