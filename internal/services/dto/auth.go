package dto

import (
	"time"

	"jobmarket_backend/internal/auth"
	"jobmarket_backend/internal/models"
)

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8,max=72,strong_password"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
	FullName string          `json:"full_name" validate:"omitempty,min=2,max=100"`
}

type LoginRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
}

// RefreshTokenRequest is also the logout body.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72,strong_password"`
}

// ClaimRequest creates the account that takes over a guest profile.
type ClaimRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72,strong_password"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type AuthResponse struct {
	User   UserResponse   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

type TokensResponse struct {
	Tokens auth.TokenPair `json:"tokens"`
}

type ClaimCandidateResponse struct {
	User    UserResponse             `json:"user"`
	Tokens  auth.TokenPair           `json:"tokens"`
	Profile *models.CandidateProfile `json:"profile"`
}

type ClaimCompanyResponse struct {
	User    UserResponse    `json:"user"`
	Tokens  auth.TokenPair  `json:"tokens"`
	Company *models.Company `json:"company"`
}
