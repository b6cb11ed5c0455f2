package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/davidjirca/dreamhome/domain"
	"github.com/davidjirca/dreamhome/dto"
	"github.com/davidjirca/dreamhome/repositories"
	"github.com/davidjirca/dreamhome/utils"
)

// UserService handles account registration and login.
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a new account with a bcrypt-hashed password. Duplicate
// emails fail validation.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		UserType:  domain.UserTypeNormal,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	log.Printf("User registered: id=%s, email=%s", user.ID, user.Email)
	return user, nil
}

// Login verifies credentials and issues a JWT. Wrong email and wrong
// password return the same error.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrPermissionDenied)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account disabled: %w", domain.ErrPermissionDenied)
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrPermissionDenied)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &dto.LoginResponse{Token: token, User: *user}, nil
}

// GetByID fetches a user account.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
