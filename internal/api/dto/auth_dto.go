package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// LoginRequest payload for login. Email format is not checked here: any
// string that matches no stored identity fails as invalid credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserSummary is the public view of an identity. It never carries a hash.
type UserSummary struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// LoginResponse standard response for login.
type LoginResponse struct {
	Success   bool        `json:"success"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserSummary `json:"user"`
}

// SummarizeIdentity builds the public view of identity.
func SummarizeIdentity(identity domain.Identity) UserSummary {
	return UserSummary{
		ID:    identity.ID(),
		Name:  identity.Name(),
		Email: identity.Email(),
		Role:  identity.Role(),
	}
}

// AdminProfileRequest payload for PUT /api/user/profile.
type AdminProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	JobTitle    *string `json:"jobTitle"`
	PhoneNumber *string `json:"phoneNumber"`
}
