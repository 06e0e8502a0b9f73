package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"civireport/entity"
	"civireport/repository"
	"civireport/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
}

func (s *AuthService) Register(email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalid)
	}

	count, err := s.users.CountByEmail(email)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Email: email, Password: string(hashed)}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a JWT. Suspended accounts cannot
// log in.
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if user.Suspended {
		return nil, "", fmt.Errorf("%w: account suspended", ErrForbidden)
	}

	role := "citizen"
	if user.Admin {
		role = "admin"
	}
	token, err := utils.GenerateToken(user.ID, role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Me(userID uint) (*entity.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
