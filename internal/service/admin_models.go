package service

import "time"

type AdminConfig struct {
	Username     string
	PasswordHash string
	// RevocationTTL is the minimum time a logged-out token stays blocked.
	RevocationTTL time.Duration
}

type LoginInput struct {
	Username  string  `json:"username" validate:"required"`
	Password  string  `json:"password" validate:"required,min=8"`
	Code      string  `json:"code" validate:"omitempty,numeric,len=6"`
	IPAddress *string `json:"-"`
}

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}
