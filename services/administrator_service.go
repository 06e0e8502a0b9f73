package services

import (
	"errors"
	"fmt"

	"civireport/entity"
	"civireport/repository"

	"gorm.io/gorm"
)

type AdministratorService struct {
	admins *repository.AdministratorRepository
	users  *repository.UserRepository
}

func NewAdministratorService(admins *repository.AdministratorRepository, users *repository.UserRepository) *AdministratorService {
	return &AdministratorService{admins: admins, users: users}
}

// AllowedCategoriesFor resolves an administrator's visibility restriction.
// nil means "no restriction": missing id, plain users and administrators
// in an unmapped department all see everything. The unmapped-department
// fail-open is intentional current behavior.
func (s *AdministratorService) AllowedCategoriesFor(adminID uint) ([]entity.Category, error) {
	if adminID == 0 {
		return nil, nil
	}

	user, err := s.users.FindByID(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.Admin {
		return nil, nil
	}

	admin, err := s.admins.FindRow(adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return entity.DepartmentCategories[admin.Department], nil
}

func (s *AdministratorService) List(limit, offset int) ([]repository.AdminWithUser, int64, error) {
	return s.admins.List(limit, offset)
}

func (s *AdministratorService) Get(id uint) (*repository.AdminWithUser, error) {
	admin, err := s.admins.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

// AdminDetails is an administrator joined with its department seat, if any.
type AdminDetails struct {
	repository.AdminWithUser
	AssignedDepartment *entity.Department `json:"assigned_department"`
}

func (s *AdministratorService) Details(id uint) (*AdminDetails, error) {
	admin, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	assigned, err := s.admins.AssignedDepartment(id)
	if err != nil {
		return nil, err
	}
	return &AdminDetails{AdminWithUser: *admin, AssignedDepartment: assigned}, nil
}

func (s *AdministratorService) ListByDepartment(dept entity.Department) ([]repository.AdminWithUser, error) {
	if !entity.ValidDepartment(dept) {
		return nil, fmt.Errorf("%w: invalid department %q", ErrInvalid, dept)
	}
	return s.admins.ListByDepartment(dept)
}

func (s *AdministratorService) ListAvailable() ([]repository.AdminWithUser, error) {
	return s.admins.ListAvailable()
}

// UpdateDepartment moves an administrator to another department. The
// department is immutable business-wise; this is the escape hatch for
// admin-driven corrections.
func (s *AdministratorService) UpdateDepartment(id uint, dept entity.Department) (*repository.AdminWithUser, error) {
	if !entity.ValidDepartment(dept) {
		return nil, fmt.Errorf("%w: invalid department %q", ErrInvalid, dept)
	}
	admin, err := s.admins.UpdateDepartment(id, dept)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdministratorService) Delete(id uint) error {
	deleted, err := s.admins.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// AdminInfo answers "is this user an administrator, and where".
type AdminInfo struct {
	UserID     uint               `json:"user_id"`
	Admin      bool               `json:"admin"`
	Department *entity.Department `json:"department"`
}

func (s *AdministratorService) InfoForUser(userID uint) (*AdminInfo, error) {
	info := &AdminInfo{UserID: userID}
	admin, err := s.admins.FindRow(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return info, nil
		}
		return nil, err
	}
	info.Admin = true
	info.Department = &admin.Department
	return info, nil
}
