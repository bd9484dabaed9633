package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaimKey is the context key under which authenticated claims are stored.
type UserClaimKey struct{}

type UserClaims struct {
	Email  string    `json:"email"`
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
	Aud    string    `json:"aud_type"`
	Issuer string    `json:"issuer"`
	jwt.RegisteredClaims
}

type AuthLoginBody struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type AuthLoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthRefreshBody struct {
	RefreshToken string `json:"refresh_token" validate:"required,max=2048"`
}

type AuthRefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// FindIDBody identifies a user by the profile fields they can recall
// when the login email is forgotten.
type FindIDBody struct {
	Nickname    string `json:"nickname"     validate:"required,max=64"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
}

type FindIDResponse struct {
	MaskedEmail string `json:"masked_email"`
}

type PasswordResetBody struct {
	Email       string `json:"email"        validate:"required,email,max=254"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
}

type PasswordResetResponse struct {
	Sent bool `json:"sent"`
}
