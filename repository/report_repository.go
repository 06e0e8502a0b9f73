package repository

import (
	"fmt"

	"civireport/entity"

	"gorm.io/gorm"
)

// normalizeSort whitelists the sort direction so it can be spliced into an
// ORDER BY clause. Anything that is not asc becomes DESC.
func normalizeSort(sort string) string {
	if sort == "asc" || sort == "ASC" {
		return "ASC"
	}
	return "DESC"
}

func orderByCreated(sort string) string {
	dir := normalizeSort(sort)
	return fmt.Sprintf("created_at %s, id %s", dir, dir)
}

// ReportFilter is the unified search/filter input. Zero values mean
// "no constraint". Allowed is the admin category restriction and is
// AND-ed with the rest.
type ReportFilter struct {
	Query    string
	Status   entity.Status
	Category entity.Category
	Allowed  []entity.Category
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(tx *gorm.DB, report *entity.Report) error {
	return tx.Create(report).Error
}

func (r *ReportRepository) FindByID(id uint) (*entity.Report, error) {
	var report entity.Report
	if err := r.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func applyFilter(q *gorm.DB, f ReportFilter) *gorm.DB {
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if len(f.Allowed) > 0 {
		q = q.Where("category IN ?", f.Allowed)
	}
	return q
}

// List returns one page of reports matching the filter plus the total
// match count.
func (r *ReportRepository) List(f ReportFilter, limit, offset int, sort string) ([]entity.Report, int64, error) {
	var total int64
	if err := applyFilter(r.db.Model(&entity.Report{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.Report
	err := applyFilter(r.db.Model(&entity.Report{}), f).
		Order(orderByCreated(sort)).
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

func (r *ReportRepository) ListByUser(userID uint, limit, offset int, sort string) ([]entity.Report, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Report{}).Where("created_by = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.Report
	err := r.db.Where("created_by = ?", userID).
		Order(orderByCreated(sort)).
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

// ListPending returns reports still waiting for validation.
func (r *ReportRepository) ListPending(limit, offset int, sort string) ([]entity.Report, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Report{}).Where("status = ?", entity.StatusOpen).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.Report
	err := r.db.Where("status = ?", entity.StatusOpen).
		Order(orderByCreated(sort)).
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

// ListAssigned returns unresolved reports the admin touched as validator
// or resolver.
func (r *ReportRepository) ListAssigned(adminID uint, limit, offset int, sort string) ([]entity.Report, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Report{}).
		Where("(validated_by = ? OR resolved_by = ?) AND status <> ?",
			adminID, adminID, entity.StatusResolved).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []entity.Report
	err := r.db.
		Where("(validated_by = ? OR resolved_by = ?) AND status <> ?",
			adminID, adminID, entity.StatusResolved).
		Order(orderByCreated(sort)).
		Limit(limit).Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

// Update applies the named column setters and returns the fresh row.
func (r *ReportRepository) Update(id uint, updates map[string]any) (*entity.Report, error) {
	if len(updates) == 0 {
		return r.FindByID(id)
	}
	res := r.db.Model(&entity.Report{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

func (r *ReportRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&entity.Report{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementUserReports bumps the reporter's denormalized counter. Runs
// inside the same transaction as the report insert.
func (r *ReportRepository) IncrementUserReports(tx *gorm.DB, userID uint) error {
	return tx.Model(&entity.User{}).Where("id = ?", userID).
		UpdateColumn("total_reports", gorm.Expr("total_reports + 1")).Error
}
