package repository

import (
	"time"

	"civireport/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) List(limit, offset int) ([]entity.User, int64, error) {
	var total int64
	if err := r.db.Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := r.db.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) Update(id uint, updates map[string]any) (*entity.User, error) {
	if len(updates) == 0 {
		return r.FindByID(id)
	}
	res := r.db.Model(&entity.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

func (r *UserRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&entity.User{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UserStats is the per-user dashboard rollup.
type UserStats struct {
	UserID            uint       `json:"user_id"`
	Email             string     `json:"email"`
	CreatedAt         time.Time  `json:"created_at"`
	TotalReports      int64      `json:"total_reports"`
	OpenReports       int64      `json:"open_reports"`
	InProgressReports int64      `json:"in_progress_reports"`
	ResolvedReports   int64      `json:"resolved_reports"`
	DeniedReports     int64      `json:"denied_reports"`
	ClosedReports     int64      `json:"closed_reports"`
	PinnedReports     int64      `json:"pinned_reports_count"`
	AvgRating         float64    `json:"avg_rating"`
	LastReportDate    *time.Time `json:"last_report_date"`
}

func (r *UserRepository) Stats(userID uint) (*UserStats, error) {
	user, err := r.FindByID(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	byStatus := func(s entity.Status) (int64, error) {
		var n int64
		err := r.db.Model(&entity.Report{}).
			Where("created_by = ? AND status = ?", userID, s).
			Count(&n).Error
		return n, err
	}

	if err := r.db.Model(&entity.Report{}).Where("created_by = ?", userID).Count(&stats.TotalReports).Error; err != nil {
		return nil, err
	}
	if stats.OpenReports, err = byStatus(entity.StatusOpen); err != nil {
		return nil, err
	}
	if stats.InProgressReports, err = byStatus(entity.StatusInProgress); err != nil {
		return nil, err
	}
	if stats.ResolvedReports, err = byStatus(entity.StatusResolved); err != nil {
		return nil, err
	}
	if stats.DeniedReports, err = byStatus(entity.StatusDenied); err != nil {
		return nil, err
	}
	stats.ClosedReports = stats.ResolvedReports + stats.DeniedReports

	if err := r.db.Model(&entity.PinnedReport{}).Where("user_id = ?", userID).Count(&stats.PinnedReports).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := r.db.Model(&entity.Report{}).Where("created_by = ?", userID).
		Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AvgRating = *avg
	}

	// MAX(created_at) loses its time affinity on sqlite, so read the
	// newest row instead of aggregating.
	var latest []entity.Report
	if err := r.db.Where("created_by = ?", userID).
		Order("created_at DESC, id DESC").Limit(1).
		Find(&latest).Error; err != nil {
		return nil, err
	}
	if len(latest) > 0 {
		stats.LastReportDate = &latest[0].CreatedAt
	}

	return stats, nil
}
