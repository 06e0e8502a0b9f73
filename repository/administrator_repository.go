package repository

import (
	"errors"
	"time"

	"civireport/entity"

	"gorm.io/gorm"
)

// AdminWithUser is an administrator row joined with its user account.
type AdminWithUser struct {
	ID            uint              `json:"id"`
	Department    entity.Department `json:"department"`
	Email         string            `json:"email"`
	Suspended     bool              `json:"suspended"`
	UserCreatedAt time.Time         `json:"user_created_at"`
}

type AdministratorRepository struct {
	db *gorm.DB
}

func NewAdministratorRepository(db *gorm.DB) *AdministratorRepository {
	return &AdministratorRepository{db: db}
}

func (r *AdministratorRepository) joined() *gorm.DB {
	return r.db.Table("administrators").
		Select("administrators.id, administrators.department, users.email, users.suspended, users.created_at AS user_created_at").
		Joins("JOIN users ON users.id = administrators.id")
}

func (r *AdministratorRepository) List(limit, offset int) ([]AdminWithUser, int64, error) {
	var total int64
	if err := r.db.Model(&entity.Administrator{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var admins []AdminWithUser
	err := r.joined().Order("administrators.id").
		Limit(limit).Offset(offset).
		Scan(&admins).Error
	return admins, total, err
}

func (r *AdministratorRepository) FindByID(id uint) (*AdminWithUser, error) {
	var admin AdminWithUser
	res := r.joined().Where("administrators.id = ?", id).Scan(&admin)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &admin, nil
}

func (r *AdministratorRepository) FindRow(id uint) (*entity.Administrator, error) {
	var admin entity.Administrator
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdministratorRepository) ListByDepartment(dept entity.Department) ([]AdminWithUser, error) {
	var admins []AdminWithUser
	err := r.joined().Where("administrators.department = ?", dept).
		Order("administrators.id").
		Scan(&admins).Error
	return admins, err
}

// ListAvailable returns administrators with no department seat assigned.
func (r *AdministratorRepository) ListAvailable() ([]AdminWithUser, error) {
	var admins []AdminWithUser
	err := r.joined().
		Where("administrators.id NOT IN (SELECT admin_id FROM department_admins)").
		Order("administrators.id").
		Scan(&admins).Error
	return admins, err
}

func (r *AdministratorRepository) UpdateDepartment(id uint, dept entity.Department) (*AdminWithUser, error) {
	res := r.db.Model(&entity.Administrator{}).Where("id = ?", id).
		Update("department", dept)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

func (r *AdministratorRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&entity.Administrator{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AdministratorRepository) IsAdministrator(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Administrator{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

// AssignedDepartment returns the department seat for an admin, or nil when
// the admin holds none.
func (r *AdministratorRepository) AssignedDepartment(adminID uint) (*entity.Department, error) {
	var row entity.DepartmentAdmin
	err := r.db.Where("admin_id = ?", adminID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row.Department, nil
}

// FindCode resolves an admin code to its department.
func (r *AdministratorRepository) FindCode(code string) (*entity.AdminCode, error) {
	var ac entity.AdminCode
	if err := r.db.Where("code = ?", code).First(&ac).Error; err != nil {
		return nil, err
	}
	return &ac, nil
}

// Promote upserts the administrators row and flips the user's admin flag,
// all inside the caller's transaction.
func (r *AdministratorRepository) Promote(tx *gorm.DB, userID uint, dept entity.Department) error {
	var admin entity.Administrator
	err := tx.First(&admin, userID).Error
	switch {
	case err == nil:
		if err := tx.Model(&entity.Administrator{}).Where("id = ?", userID).
			Update("department", dept).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&entity.Administrator{ID: userID, Department: dept}).Error; err != nil {
			return err
		}
	default:
		return err
	}

	return tx.Model(&entity.User{}).Where("id = ?", userID).
		Update("admin", true).Error
}
