package repository

import (
	"time"

	"civireport/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PinnedReportDetail is a pin joined with the report it bookmarks.
type PinnedReportDetail struct {
	UserID      uint            `json:"user_id"`
	ReportID    uint            `json:"report_id"`
	PinnedAt    time.Time       `json:"pinned_at"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      entity.Status   `json:"status"`
	Category    entity.Category `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

type PinnedReportRepository struct {
	db *gorm.DB
}

func NewPinnedReportRepository(db *gorm.DB) *PinnedReportRepository {
	return &PinnedReportRepository{db: db}
}

// Pin inserts the bookmark, doing nothing if it already exists.
func (r *PinnedReportRepository) Pin(userID, reportID uint) (*entity.PinnedReport, error) {
	pin := entity.PinnedReport{UserID: userID, ReportID: reportID, PinnedAt: time.Now()}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pin).Error; err != nil {
		return nil, err
	}
	// Re-read so a no-op insert still returns the original pinned_at.
	var out entity.PinnedReport
	if err := r.db.Where("user_id = ? AND report_id = ?", userID, reportID).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PinnedReportRepository) Unpin(userID, reportID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND report_id = ?", userID, reportID).
		Delete(&entity.PinnedReport{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PinnedReportRepository) IsPinned(userID, reportID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.PinnedReport{}).
		Where("user_id = ? AND report_id = ?", userID, reportID).
		Count(&count).Error
	return count > 0, err
}

func (r *PinnedReportRepository) joined() *gorm.DB {
	return r.db.Table("pinned_reports").
		Select("pinned_reports.user_id, pinned_reports.report_id, pinned_reports.pinned_at, " +
			"reports.title, reports.description, reports.status, reports.category, reports.created_at").
		Joins("JOIN reports ON reports.id = pinned_reports.report_id")
}

func (r *PinnedReportRepository) ListByUser(userID uint, limit, offset int) ([]PinnedReportDetail, int64, error) {
	var total int64
	if err := r.db.Model(&entity.PinnedReport{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []PinnedReportDetail
	err := r.joined().Where("pinned_reports.user_id = ?", userID).
		Order("pinned_reports.pinned_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, total, err
}

func (r *PinnedReportRepository) Detail(userID, reportID uint) (*PinnedReportDetail, error) {
	var row PinnedReportDetail
	res := r.joined().
		Where("pinned_reports.user_id = ? AND pinned_reports.report_id = ?", userID, reportID).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
