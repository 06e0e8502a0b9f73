package repository

import (
	"civireport/entity"

	"gorm.io/gorm"
)

// RatingRepository manages the report_ratings relation and the cached
// counter on reports. The toggle service wraps these in one transaction
// so the counter can never drift from the relation.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Exists(tx *gorm.DB, reportID, userID uint) (bool, error) {
	var count int64
	err := tx.Model(&entity.ReportRating{}).
		Where("report_id = ? AND user_id = ?", reportID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RatingRepository) Insert(tx *gorm.DB, reportID, userID uint) error {
	return tx.Create(&entity.ReportRating{ReportID: reportID, UserID: userID}).Error
}

func (r *RatingRepository) Remove(tx *gorm.DB, reportID, userID uint) error {
	return tx.Where("report_id = ? AND user_id = ?", reportID, userID).
		Delete(&entity.ReportRating{}).Error
}

func (r *RatingRepository) Increment(tx *gorm.DB, reportID uint) error {
	return tx.Model(&entity.Report{}).Where("id = ?", reportID).
		UpdateColumn("rating", gorm.Expr("rating + 1")).Error
}

// Decrement floors the counter at zero.
func (r *RatingRepository) Decrement(tx *gorm.DB, reportID uint) error {
	return tx.Model(&entity.Report{}).Where("id = ? AND rating > 0", reportID).
		UpdateColumn("rating", gorm.Expr("rating - 1")).Error
}

func (r *RatingRepository) Count(reportID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.ReportRating{}).
		Where("report_id = ?", reportID).
		Count(&count).Error
	return count, err
}
