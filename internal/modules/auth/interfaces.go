package auth

import (
	"context"

	"equiplend/internal/domain"
)

type ActorRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Actor, error)
	GetByID(ctx context.Context, id int64) (*domain.Actor, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
