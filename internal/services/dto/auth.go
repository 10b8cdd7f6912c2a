package dto

import "gatherly_backend/internal/models"

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Name     string          `json:"name" validate:"required,max=120"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,is-user-role"`

	// Provider profile fields, used only when role = provider
	BusinessName string `json:"business_name" validate:"omitempty,max=200"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	Phone        string `json:"phone" validate:"omitempty,max=40"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  models.UserRole `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}
