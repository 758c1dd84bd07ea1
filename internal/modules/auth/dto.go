package auth

import "equiplend/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Actor *domain.Actor `json:"actor"`
	Token string        `json:"token"`
}
