// Package access implements the role gate every lending operation passes
// before touching storage.
package access

import (
	"context"
	"fmt"

	"equiplend/internal/domain"
)

var (
	// Requesters may create reservations.
	Requesters = []domain.Role{domain.RoleStudent, domain.RoleLecturer}
	// Staff may manage equipment, decide reservations and run the desk.
	Staff = []domain.Role{domain.RoleAdmin, domain.RoleMediaStaff}
	// Anyone is every known role.
	Anyone = []domain.Role{domain.RoleStudent, domain.RoleLecturer, domain.RoleAdmin, domain.RoleMediaStaff}
)

// Authorize returns nil when role is a known role contained in allowed.
// It rejects on mismatch, on an unknown or empty role and on an empty
// allowed set.
func Authorize(role domain.Role, allowed ...domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrAccessDenied, role)
	}
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q not permitted", domain.ErrAccessDenied, role)
}

type Gate struct {
	actors ActorRepository
}

func NewGate(actors ActorRepository) *Gate {
	return &Gate{actors: actors}
}

// Require reads the actor's stored role and authorizes it. The role is
// always re-read so a stale token cannot widen access. The returned actor
// carries only the id and that role.
func (g *Gate) Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error) {
	if actorID <= 0 {
		return nil, fmt.Errorf("%w: actor id is required", domain.ErrValidation)
	}
	role, err := g.actors.GetRole(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(role, allowed...); err != nil {
		return nil, err
	}
	return &domain.Actor{ID: actorID, Role: role}, nil
}
