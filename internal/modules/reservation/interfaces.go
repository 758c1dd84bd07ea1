package reservation

import (
	"context"
	"time"

	"equiplend/internal/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.Reservation, error)
	Approve(ctx context.Context, id, staffID int64, at time.Time) (*domain.Reservation, error)
	Reject(ctx context.Context, id, staffID int64, at time.Time) (*domain.Reservation, error)
}

// EquipmentLookup confirms the requested item exists.
type EquipmentLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

type Gate interface {
	Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error)
}

type Publisher interface {
	Publish(ev domain.StatusEvent)
}
