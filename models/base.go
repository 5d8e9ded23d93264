package models

import "time"

type JsonModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GoogleAuthSignIn struct {
	IdToken  string `json:"idToken" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

type AppleAuthRequest struct {
	IdentityToken     string `json:"identity_token" validate:"required"`
	Platform          string `json:"platform" validate:"required"`
	AuthorizationCode string `json:"authorization_code" validate:"required"`
}

type RefreshTokenIn struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type SignInOut struct {
	Id                  uint    `json:"id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	New                 bool    `json:"new"`
	Avatar              string  `json:"avatar"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
	AccessToken         string  `json:"access_token"`
	RefreshToken        string  `json:"refresh_token"`
}
