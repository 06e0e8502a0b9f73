package repository

import (
	"time"

	"civireport/entity"

	"gorm.io/gorm"
)

// StatsRepository exposes the read-only aggregation primitives the stats
// service builds its rollups from. Queries that would need driver-specific
// date arithmetic return raw timestamps and let the service do the math.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CategoryRollup is the per-category resolved/total count pair.
type CategoryRollup struct {
	Category entity.Category
	Total    int64
	Resolved int64
}

func (r *StatsRepository) CategoryRollups() ([]CategoryRollup, error) {
	var rows []CategoryRollup
	err := r.db.Model(&entity.Report{}).
		Select("category, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS resolved",
			entity.StatusResolved).
		Group("category").
		Scan(&rows).Error
	return rows, err
}

// ResolvedSpan is the lifetime of a resolved report.
type ResolvedSpan struct {
	Category   entity.Category
	CreatedAt  time.Time
	ResolvedAt time.Time
}

func (r *StatsRepository) ResolvedSpans() ([]ResolvedSpan, error) {
	var rows []ResolvedSpan
	err := r.db.Model(&entity.Report{}).
		Select("category, created_at, resolved_at").
		Where("resolved_at IS NOT NULL").
		Scan(&rows).Error
	return rows, err
}

// CreatedSince returns the creation timestamps of all reports filed on or
// after the epoch, oldest first.
func (r *StatsRepository) CreatedSince(epoch time.Time) ([]time.Time, error) {
	var stamps []time.Time
	err := r.db.Model(&entity.Report{}).
		Where("created_at >= ?", epoch).
		Order("created_at").
		Pluck("created_at", &stamps).Error
	return stamps, err
}

// CategoryCount is a per-category report count.
type CategoryCount struct {
	Category entity.Category `json:"category"`
	Count    int64           `json:"count"`
}

func (r *StatsRepository) CategoryCounts() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.Model(&entity.Report{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// AdminPerformance is one administrator's activity over a trailing window.
type AdminPerformance struct {
	ID                 uint              `json:"id"`
	Department         entity.Department `json:"department"`
	Email              string            `json:"email"`
	ReportsHandled     int64             `json:"reports_handled"`
	ReportsResolved    int64             `json:"reports_resolved"`
	PersonallyResolved int64             `json:"personally_resolved"`
	AvgRating          float64           `json:"avg_rating"`
	CategoriesHandled  int64             `json:"categories_handled"`
}

func (r *StatsRepository) AdminPerformance(cutoff time.Time) ([]AdminPerformance, error) {
	var rows []AdminPerformance
	err := r.db.Raw(`
		SELECT
			administrators.id,
			administrators.department,
			users.email,
			COUNT(reports.id) AS reports_handled,
			SUM(CASE WHEN reports.status = ? THEN 1 ELSE 0 END) AS reports_resolved,
			SUM(CASE WHEN reports.resolved_by = administrators.id THEN 1 ELSE 0 END) AS personally_resolved,
			COALESCE(AVG(reports.rating), 0) AS avg_rating,
			COUNT(DISTINCT reports.category) AS categories_handled
		FROM administrators
		JOIN users ON users.id = administrators.id
		LEFT JOIN reports ON (reports.validated_by = administrators.id OR reports.resolved_by = administrators.id)
		WHERE reports.created_at >= ?
		GROUP BY administrators.id, administrators.department, users.email
		ORDER BY reports_handled DESC`,
		entity.StatusResolved, cutoff).
		Scan(&rows).Error
	return rows, err
}

// AdminWorkload is the per-admin assignment rollup shown on admin pages.
type AdminWorkload struct {
	ID                 uint              `json:"id"`
	Department         entity.Department `json:"department"`
	Email              string            `json:"email"`
	TotalAssigned      int64             `json:"total_assigned_reports"`
	ReportsResolved    int64             `json:"resolved_reports"`
	AvgRating          float64           `json:"avg_rating"`
	PersonallyResolved int64             `json:"resolved_personally"`
}

func (r *StatsRepository) AllAdminWorkloads() ([]AdminWorkload, error) {
	var rows []AdminWorkload
	err := r.db.Raw(`
		SELECT
			administrators.id,
			administrators.department,
			users.email,
			COUNT(reports.id) AS total_assigned,
			SUM(CASE WHEN reports.status = ? THEN 1 ELSE 0 END) AS reports_resolved,
			COALESCE(AVG(reports.rating), 0) AS avg_rating,
			SUM(CASE WHEN reports.resolved_by = administrators.id THEN 1 ELSE 0 END) AS personally_resolved
		FROM administrators
		JOIN users ON users.id = administrators.id
		LEFT JOIN reports ON (reports.validated_by = administrators.id OR reports.resolved_by = administrators.id)
		GROUP BY administrators.id, administrators.department, users.email
		ORDER BY total_assigned DESC`,
		entity.StatusResolved).
		Scan(&rows).Error
	return rows, err
}

// AdminActivity is the single-admin version of AdminWorkload.
type AdminActivity struct {
	TotalAssigned      int64 `json:"total_assigned_reports"`
	InProgress         int64 `json:"in_progress_reports"`
	PersonallyResolved int64 `json:"resolved_personally"`
}

func (r *StatsRepository) AdminActivity(adminID uint) (*AdminActivity, error) {
	base := r.db.Model(&entity.Report{}).
		Where("validated_by = ? OR resolved_by = ?", adminID, adminID)

	var a AdminActivity
	if err := base.Session(&gorm.Session{}).Count(&a.TotalAssigned).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", entity.StatusInProgress).
		Count(&a.InProgress).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entity.Report{}).Where("resolved_by = ?", adminID).
		Count(&a.PersonallyResolved).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Overview is the system-wide dashboard rollup.
type Overview struct {
	TotalReports      int64   `json:"total_reports"`
	OpenReports       int64   `json:"open_reports"`
	InProgressReports int64   `json:"in_progress_reports"`
	ResolvedReports   int64   `json:"resolved_reports"`
	DeniedReports     int64   `json:"denied_reports"`
	ClosedReports     int64   `json:"closed_reports"`
	AvgRating         float64 `json:"avg_rating"`
	TotalUsers        int64   `json:"total_users"`
	PinnedReports     int64   `json:"pinned_reports_count"`
}

func (r *StatsRepository) Overview() (*Overview, error) {
	var o Overview
	if err := r.db.Model(&entity.Report{}).Count(&o.TotalReports).Error; err != nil {
		return nil, err
	}

	byStatus := func(s entity.Status, out *int64) error {
		return r.db.Model(&entity.Report{}).Where("status = ?", s).Count(out).Error
	}
	if err := byStatus(entity.StatusOpen, &o.OpenReports); err != nil {
		return nil, err
	}
	if err := byStatus(entity.StatusInProgress, &o.InProgressReports); err != nil {
		return nil, err
	}
	if err := byStatus(entity.StatusResolved, &o.ResolvedReports); err != nil {
		return nil, err
	}
	if err := byStatus(entity.StatusDenied, &o.DeniedReports); err != nil {
		return nil, err
	}
	o.ClosedReports = o.ResolvedReports + o.DeniedReports

	var avg *float64
	if err := r.db.Model(&entity.Report{}).Select("AVG(rating)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		o.AvgRating = *avg
	}

	if err := r.db.Model(&entity.User{}).Count(&o.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entity.PinnedReport{}).Count(&o.PinnedReports).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// DepartmentOverview aggregates reports handled by a department's seated
// admins.
type DepartmentOverview struct {
	Department        entity.Department `json:"department"`
	TotalReports      int64             `json:"total_reports"`
	OpenReports       int64             `json:"open_reports"`
	InProgressReports int64             `json:"in_progress_reports"`
	ResolvedReports   int64             `json:"resolved_reports"`
	AvgRating         float64           `json:"avg_rating"`
}

func (r *StatsRepository) DepartmentOverview(dept entity.Department) (*DepartmentOverview, error) {
	var row DepartmentOverview
	res := r.db.Raw(`
		SELECT
			department_admins.department,
			COUNT(reports.id) AS total_reports,
			SUM(CASE WHEN reports.status = ? THEN 1 ELSE 0 END) AS open_reports,
			SUM(CASE WHEN reports.status = ? THEN 1 ELSE 0 END) AS in_progress_reports,
			SUM(CASE WHEN reports.status = ? THEN 1 ELSE 0 END) AS resolved_reports,
			COALESCE(AVG(reports.rating), 0) AS avg_rating
		FROM department_admins
		LEFT JOIN administrators ON administrators.id = department_admins.admin_id
		LEFT JOIN reports ON (reports.validated_by = administrators.id OR reports.resolved_by = administrators.id)
		WHERE department_admins.department = ?
		GROUP BY department_admins.department`,
		entity.StatusOpen, entity.StatusInProgress, entity.StatusResolved, dept).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// RecentReport is the trimmed report shape on the admin dashboard.
type RecentReport struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Status    entity.Status   `json:"status"`
	Category  entity.Category `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *StatsRepository) RecentReports(limit int) ([]RecentReport, error) {
	var rows []RecentReport
	err := r.db.Model(&entity.Report{}).
		Select("id, title, status, category, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// StatusCount is a per-status report count.
type StatusCount struct {
	Status entity.Status `json:"status"`
	Count  int64         `json:"count"`
}

func (r *StatsRepository) StatusCounts() ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.Model(&entity.Report{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// AdminCount is an admin-id leaderboard row.
type AdminCount struct {
	AdminID uint  `json:"admin_id"`
	Count   int64 `json:"count"`
}

func (r *StatsRepository) TopAdminsValidated(n int) ([]AdminCount, error) {
	var rows []AdminCount
	err := r.db.Model(&entity.Report{}).
		Select("validated_by AS admin_id, COUNT(*) AS count").
		Where("validated_by IS NOT NULL").
		Group("validated_by").
		Order("count DESC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) TopAdminsResolved(n int) ([]AdminCount, error) {
	var rows []AdminCount
	err := r.db.Model(&entity.Report{}).
		Select("resolved_by AS admin_id, COUNT(*) AS count").
		Where("status = ? AND resolved_by IS NOT NULL", entity.StatusResolved).
		Group("resolved_by").
		Order("count DESC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// UserCount is a reporter leaderboard row.
type UserCount struct {
	UserID uint  `json:"user_id"`
	Count  int64 `json:"count"`
}

func (r *StatsRepository) TopUsersByReports(n int) ([]UserCount, error) {
	var rows []UserCount
	err := r.db.Model(&entity.Report{}).
		Select("created_by AS user_id, COUNT(*) AS count").
		Group("created_by").
		Order("count DESC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// CategoryResolution is the per-category total/resolved pair shown on the
// admin dashboard.
type CategoryResolution struct {
	Category entity.Category `json:"category"`
	Total    int64           `json:"total"`
	Resolved int64           `json:"resolved"`
}

func (r *StatsRepository) CategoryResolutions() ([]CategoryResolution, error) {
	var rows []CategoryResolution
	err := r.db.Model(&entity.Report{}).
		Select("category, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS resolved",
			entity.StatusResolved).
		Group("category").
		Scan(&rows).Error
	return rows, err
}
