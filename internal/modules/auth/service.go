// Package auth exchanges actor credentials for a bearer token. The token
// identifies the actor only; roles are always re-read from storage.
package auth

import (
	"context"
	"errors"
	"strings"

	"equiplend/internal/domain"
	"equiplend/internal/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	actors ActorRepository
	tokens TokenIssuer
}

func NewService(actors ActorRepository, tokens TokenIssuer) *Service {
	return &Service{actors: actors, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	actor, err := s.actors.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if actor.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(actor.ID, string(actor.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Actor: actor, Token: token}, nil
}

func (s *Service) Me(ctx context.Context, actorID int64) (*domain.Actor, error) {
	return s.actors.GetByID(ctx, actorID)
}

// HashPassword is used by the seed command.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
