package service

import (
	"context"
	"strings"

	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
	apperrors "github.com/trusttrip/booking-service/pkg/util"
)

// UserService exposes account listings and direct account creation.
type UserService struct {
	store  repository.Store
	hasher auth.PasswordHasher
}

// NewUserService builds the service.
func NewUserService(deps Dependencies, hasher auth.PasswordHasher) *UserService {
	return &UserService{store: deps.Store, hasher: hasher}
}

// CreateUserInput describes an account created through the users collection.
type CreateUserInput struct {
	Name         string
	Email        string
	Password     string
	Bio          *string
	Phone        *string
	ProfileImage *string
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter, params repository.ListParams) (Page[domain.User], error) {
	users := s.store.Repos().Users
	items, err := users.List(ctx, filter, params)
	if err != nil {
		return Page[domain.User]{}, err
	}
	total, err := users.Count(ctx, filter)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return newPage(items, total, params), nil
}

// Get loads a single user.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.store.Repos().Users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "User")
	}
	return user, nil
}

// Create stores a regular, active account.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	users := s.store.Repos().Users
	email := normalizeEmail(input.Email)
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("A user with this email already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         string(auth.RoleUser),
		Status:       domain.UserStatusActive,
		Bio:          input.Bio,
		Phone:        input.Phone,
		ProfileImage: input.ProfileImage,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
