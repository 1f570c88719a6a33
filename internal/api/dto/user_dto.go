package dto

import (
	"time"

	"github.com/trusttrip/booking-service/internal/domain"
)

// CreateUserRequest is the payload of POST /api/users and the signup endpoints.
type CreateUserRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=6,max=100"`
	Bio          *string `json:"bio" validate:"omitempty,max=500"`
	Phone        *string `json:"phone" validate:"omitempty,phone"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	Bio          *string   `json:"bio"`
	Phone        *string   `json:"phone"`
	ProfileImage *string   `json:"profileImage"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUserResponse maps a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Status:       string(u.Status),
		Bio:          u.Bio,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		Verified:     u.Verified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// NewUserResponses maps a page of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
