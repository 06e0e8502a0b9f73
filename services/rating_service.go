package services

import (
	"civireport/repository"

	"gorm.io/gorm"
)

type RatingService struct {
	db      *gorm.DB
	ratings *repository.RatingRepository
	reports *ReportService
}

func NewRatingService(db *gorm.DB, ratings *repository.RatingRepository, reports *ReportService) *RatingService {
	return &RatingService{db: db, ratings: ratings, reports: reports}
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	ReportID uint `json:"report_id"`
	Rating   int  `json:"rating"`
	NowRated bool `json:"now_rated"`
}

// Toggle flips the (user, report) rating: on when absent, off when
// present. Row mutation and cached counter move in one transaction so
// the counter always equals the row count. Report creators cannot rate
// their own reports.
func (s *RatingService) Toggle(reportID, userID uint) (*ToggleResult, error) {
	report, err := s.reports.Get(reportID)
	if err != nil {
		return nil, err
	}
	if report.CreatedBy == userID {
		return nil, ErrForbidden
	}

	var nowRated bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.ratings.Exists(tx, reportID, userID)
		if err != nil {
			return err
		}
		if exists {
			if err := s.ratings.Remove(tx, reportID, userID); err != nil {
				return err
			}
			return s.ratings.Decrement(tx, reportID)
		}
		nowRated = true
		if err := s.ratings.Insert(tx, reportID, userID); err != nil {
			return err
		}
		return s.ratings.Increment(tx, reportID)
	})
	if err != nil {
		return nil, err
	}

	return s.result(reportID, nowRated)
}

// Unrate removes the rating if present. Removing an absent rating is a
// no-op, not an error.
func (s *RatingService) Unrate(reportID, userID uint) (*ToggleResult, error) {
	if _, err := s.reports.Get(reportID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.ratings.Exists(tx, reportID, userID)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		if err := s.ratings.Remove(tx, reportID, userID); err != nil {
			return err
		}
		return s.ratings.Decrement(tx, reportID)
	})
	if err != nil {
		return nil, err
	}

	return s.result(reportID, false)
}

// RatingStatus answers whether a user has rated a report.
type RatingStatus struct {
	ReportID uint `json:"report_id"`
	UserID   uint `json:"user_id"`
	Rated    bool `json:"rated"`
	Rating   int  `json:"rating"`
}

func (s *RatingService) Status(reportID, userID uint) (*RatingStatus, error) {
	report, err := s.reports.Get(reportID)
	if err != nil {
		return nil, err
	}
	rated, err := s.ratings.Exists(s.db, reportID, userID)
	if err != nil {
		return nil, err
	}
	return &RatingStatus{
		ReportID: reportID,
		UserID:   userID,
		Rated:    rated,
		Rating:   report.Rating,
	}, nil
}

func (s *RatingService) result(reportID uint, nowRated bool) (*ToggleResult, error) {
	report, err := s.reports.Get(reportID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{ReportID: reportID, Rating: report.Rating, NowRated: nowRated}, nil
}
