package authv1

import "time"

// Request payloads carry go-playground/validator tags; the handler validates them
// before calling the service.

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	UserName string `json:"userName,omitempty"`
}

type SignupResponse struct {
	Message   string `json:"message"`
	AccountID string `json:"accountId"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Account is the public view of an account returned on login.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// Tokens is an access/refresh token pair.
type Tokens struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type LoginResponse struct {
	Message string  `json:"message"`
	Account Account `json:"user"`
	Tokens  Tokens  `json:"tokens"`
}

type RefreshRequest struct {
	AccountID    string `json:"accountId" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RefreshResponse struct {
	Tokens
}

// LogoutRequest is empty; the account comes from the bearer token.
type LogoutRequest struct{}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Otp         string `json:"otp" validate:"required,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// MessageResponse is returned by operations whose only result is a user-facing message.
type MessageResponse struct {
	Message string `json:"message"`
}

type AdminPingRequest struct{}

type AdminPingResponse struct {
	Ok bool `json:"ok"`
}

type GetOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type GetOTPResponse struct {
	Otp  string `json:"otp"`
	Note string `json:"note"`
}

// Getters name the account a message refers to; the audit interceptor reads them.

func (x *SignupResponse) GetAccountId() string {
	if x != nil {
		return x.AccountID
	}
	return ""
}

func (x *LoginResponse) GetAccountId() string {
	if x != nil {
		return x.Account.ID
	}
	return ""
}

func (x *RefreshRequest) GetAccountId() string {
	if x != nil {
		return x.AccountID
	}
	return ""
}
