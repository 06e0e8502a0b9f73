package services

import (
	"errors"
	"fmt"
	"strings"

	"civireport/entity"
	"civireport/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db     *gorm.DB
	users  *repository.UserRepository
	admins *repository.AdministratorRepository
}

func NewUserService(db *gorm.DB, users *repository.UserRepository, admins *repository.AdministratorRepository) *UserService {
	return &UserService{db: db, users: users, admins: admins}
}

func (s *UserService) Get(id uint) (*entity.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(limit, offset int) ([]entity.User, int64, error) {
	return s.users.List(limit, offset)
}

// UserUpdate is the explicit partial-update contract for users.
type UserUpdate struct {
	Email     *string
	Password  *string
	Admin     *bool
	Suspended *bool
	Pinned    *bool
}

func (s *UserService) Update(id uint, upd UserUpdate) (*entity.User, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	cols := map[string]any{}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalid)
		}
		cols["email"] = email
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		cols["password"] = string(hashed)
	}
	if upd.Admin != nil {
		cols["admin"] = *upd.Admin
	}
	if upd.Suspended != nil {
		cols["suspended"] = *upd.Suspended
	}
	if upd.Pinned != nil {
		cols["pinned"] = *upd.Pinned
	}

	user, err := s.users.Update(id, cols)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	deleted, err := s.users.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) setFlag(id uint, column string, value bool) (*entity.User, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	return s.users.Update(id, map[string]any{column: value})
}

func (s *UserService) Suspend(id uint) (*entity.User, error)   { return s.setFlag(id, "suspended", true) }
func (s *UserService) Unsuspend(id uint) (*entity.User, error) { return s.setFlag(id, "suspended", false) }
func (s *UserService) Pin(id uint) (*entity.User, error)       { return s.setFlag(id, "pinned", true) }
func (s *UserService) Unpin(id uint) (*entity.User, error)     { return s.setFlag(id, "pinned", false) }

func (s *UserService) Stats(id uint) (*repository.UserStats, error) {
	stats, err := s.users.Stats(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stats, nil
}

// PromotionResult describes the outcome of an admin-code redemption.
type PromotionResult struct {
	Success      bool              `json:"success"`
	Department   entity.Department `json:"department"`
	AlreadyAdmin bool              `json:"already_admin"`
}

// RedeemAdminCode promotes the user into the department named by the
// code. The administrators upsert and the users.admin flip happen in one
// transaction.
func (s *UserService) RedeemAdminCode(userID uint, code string) (*PromotionResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: code cannot be empty", ErrInvalid)
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	adminCode, err := s.admins.FindCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid code", ErrInvalid)
		}
		return nil, err
	}
	if !entity.ValidDepartment(adminCode.Department) {
		return nil, fmt.Errorf("%w: invalid department for this code", ErrInvalid)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.admins.Promote(tx, userID, adminCode.Department)
	})
	if err != nil {
		return nil, err
	}

	return &PromotionResult{
		Success:      true,
		Department:   adminCode.Department,
		AlreadyAdmin: user.Admin,
	}, nil
}
