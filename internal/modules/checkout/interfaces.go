package checkout

import (
	"context"
	"time"

	"equiplend/internal/domain"
)

type CheckoutRepository interface {
	Open(ctx context.Context, reservationID, staffID int64, at time.Time) (*domain.CheckoutRecord, error)
	Close(ctx context.Context, reservationID, staffID int64, cond domain.Condition, at time.Time) (*domain.CheckoutRecord, error)
	ListPending(ctx context.Context) ([]domain.Reservation, error)
	ListOpen(ctx context.Context) ([]domain.CheckoutRecord, error)
	ListByEquipment(ctx context.Context, equipmentID int64) ([]domain.CheckoutRecord, error)
}

type Gate interface {
	Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error)
}

type Publisher interface {
	Publish(ev domain.StatusEvent)
}
