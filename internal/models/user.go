package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the signed-in user as this service sees it. Exactly one is
// active per session token; absence means anonymous.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Account is a registered credential record, used only by the JWT
// authenticator. The mock issuer never consults it.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success        bool      `json:"success"`
	Identity       *Identity `json:"identity,omitempty"`
	Message        string    `json:"message,omitempty"`
	RemainingTries int       `json:"remaining_tries,omitempty"`
	RetryAfter     int       `json:"retry_after,omitempty"`
}

// Claims is the JWT payload for the backend-verified authenticator variant.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
