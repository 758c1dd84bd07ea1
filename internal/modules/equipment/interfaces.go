package equipment

import (
	"context"

	"equiplend/internal/domain"
)

// EquipmentRepository is the slice of the persistence gateway the registry
// needs.
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
}

type Gate interface {
	Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error)
}

// Publisher receives committed status changes. May be nil.
type Publisher interface {
	Publish(ev domain.StatusEvent)
}
