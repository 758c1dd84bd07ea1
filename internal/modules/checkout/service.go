// Package checkout hands approved reservations out across the desk and takes
// them back in, keeping equipment status in step.
package checkout

import (
	"context"
	"fmt"
	"time"

	"equiplend/internal/domain"
	"equiplend/internal/modules/access"
)

type Service struct {
	repo      CheckoutRepository
	gate      Gate
	publisher Publisher
	now       func() time.Time
}

func NewService(repo CheckoutRepository, gate Gate, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		gate:      gate,
		publisher: publisher,
		now:       time.Now,
	}
}

// CheckOut opens the single checkout record of an approved reservation.
// A second attempt for the same reservation fails with ErrConflict.
func (s *Service) CheckOut(ctx context.Context, reservationID, staffID int64) (*domain.CheckoutRecord, error) {
	if _, err := s.gate.Require(ctx, staffID, access.Staff...); err != nil {
		return nil, err
	}
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation id is required", domain.ErrValidation)
	}

	now := s.now().UTC()
	rec, err := s.repo.Open(ctx, reservationID, staffID, now)
	if err != nil {
		return nil, err
	}

	s.publish(rec, domain.EventCheckedOut, domain.EquipmentCheckedOut, staffID, now)
	return rec, nil
}

// CheckIn closes the open record and returns the item to the shelf in the
// reported condition. An item cannot come back "new".
func (s *Service) CheckIn(ctx context.Context, reservationID, staffID int64, condition domain.Condition) (*domain.CheckoutRecord, error) {
	if _, err := s.gate.Require(ctx, staffID, access.Staff...); err != nil {
		return nil, err
	}
	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservation id is required", domain.ErrValidation)
	}
	if !condition.ValidReturn() {
		return nil, fmt.Errorf("%w: condition %q is not a return condition", domain.ErrValidation, condition)
	}

	now := s.now().UTC()
	rec, err := s.repo.Close(ctx, reservationID, staffID, condition, now)
	if err != nil {
		return nil, err
	}

	s.publish(rec, domain.EventCheckedIn, domain.EquipmentAvailable, staffID, now)
	return rec, nil
}

// PendingCheckouts lists approved reservations still waiting at the desk.
// Callers are authorized at the transport.
func (s *Service) PendingCheckouts(ctx context.Context) ([]domain.Reservation, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) OpenCheckouts(ctx context.Context) ([]domain.CheckoutRecord, error) {
	return s.repo.ListOpen(ctx)
}

// History lists every record of one item, newest first.
func (s *Service) History(ctx context.Context, equipmentID int64) ([]domain.CheckoutRecord, error) {
	if equipmentID <= 0 {
		return nil, fmt.Errorf("%w: equipment id is required", domain.ErrValidation)
	}
	return s.repo.ListByEquipment(ctx, equipmentID)
}

func (s *Service) publish(rec *domain.CheckoutRecord, typ domain.StatusEventType, status domain.EquipmentStatus, actorID int64, at time.Time) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.StatusEvent{
		Type:          typ,
		EquipmentID:   rec.EquipmentID,
		ReservationID: rec.ReservationID,
		Status:        string(status),
		ActorID:       actorID,
		At:            at,
	})
}
