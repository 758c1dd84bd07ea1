package access

import (
	"context"

	"equiplend/internal/domain"
)

// ActorRepository resolves an actor's stored role.
type ActorRepository interface {
	GetRole(ctx context.Context, id int64) (domain.Role, error)
}
