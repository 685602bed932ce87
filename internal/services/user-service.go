package services

import (
	"errors"
	"strings"

	"github.com/ss-immigration/application_service/internal/domain"
	"github.com/ss-immigration/application_service/internal/dto"
	"github.com/ss-immigration/application_service/internal/errs"
	"github.com/ss-immigration/application_service/internal/helper"
	"github.com/ss-immigration/application_service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	Register(input dto.RegisterRequest) (string, error)
	Login(input dto.UserLogin) (string, error)
	FindByID(id uint) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{repo: repo, auth: auth}
}

func (s *userService) Register(input dto.RegisterRequest) (string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return "", errs.Validation("email", "a valid email is required")
	}
	if len(input.Password) < 8 {
		return "", errs.Validation("password", "must be at least 8 characters")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return "", errs.Validation("first_name", "is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		return "", errs.Validation("last_name", "is required")
	}

	if existing, err := s.repo.FindUserByEmail(email); err == nil && existing != nil {
		return "", errs.Validation("email", "This email is already registered. Please login instead.")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return "", err
	}

	user, err := s.repo.CreateUser(&domain.User{
		Email:        email,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         domain.RoleApplicant,
		Status:       "active",
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", errs.Validation("email", "This email is already registered. Please login instead.")
		}
		return "", err
	}

	return s.auth.GenerateToken(user.ID, user.Email, user.Role)
}

func (s *userService) Login(input dto.UserLogin) (string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.Validation("email", "invalid email or password")
		}
		return "", err
	}

	if err := s.auth.VerifyPassword(input.Password, user.PasswordHash); err != nil {
		return "", errs.Validation("email", "invalid email or password")
	}

	return s.auth.GenerateToken(user.ID, user.Email, user.Role)
}

func (s *userService) FindByID(id uint) (*domain.User, error) {
	user, err := s.repo.FindUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}
