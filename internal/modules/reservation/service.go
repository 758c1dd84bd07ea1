// Package reservation implements the request and approval workflow.
// Approval, not request, is where an item is allocated.
package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"equiplend/internal/domain"
	"equiplend/internal/modules/access"
	"equiplend/internal/pkg/validator"
)

type Service struct {
	repo      ReservationRepository
	equipment EquipmentLookup
	gate      Gate
	publisher Publisher
	now       func() time.Time
}

func NewService(repo ReservationRepository, equipment EquipmentLookup, gate Gate, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		equipment: equipment,
		gate:      gate,
		publisher: publisher,
		now:       time.Now,
	}
}

// Request records a pending reservation. The item must exist but its
// current status is not consulted; conflicts surface at approval.
func (s *Service) Request(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	if _, err := s.gate.Require(ctx, req.RequesterID, access.Requesters...); err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	requested, err := parseDate("requested_date", req.RequestedDate)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if requested.Before(today(now)) {
		return nil, fmt.Errorf("%w: requested_date %s is in the past", domain.ErrValidation, req.RequestedDate)
	}

	var returnDate *time.Time
	if req.ReturnDate != nil && strings.TrimSpace(*req.ReturnDate) != "" {
		rd, err := parseDate("return_date", *req.ReturnDate)
		if err != nil {
			return nil, err
		}
		if rd.Before(requested) {
			return nil, fmt.Errorf("%w: return_date precedes requested_date", domain.ErrValidation)
		}
		returnDate = &rd
	}

	if _, err := s.equipment.GetByID(ctx, req.EquipmentID); err != nil {
		return nil, err
	}

	r := &domain.Reservation{
		RequesterID:   req.RequesterID,
		EquipmentID:   req.EquipmentID,
		RequestedDate: requested,
		ReturnDate:    returnDate,
		Status:        domain.ReservationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.publish(r, domain.EventReservationRequested, req.RequesterID, now)
	return r, nil
}

// ListForActor returns every reservation to staff and only their own to
// requesters.
func (s *Service) ListForActor(ctx context.Context, actorID int64) ([]domain.Reservation, error) {
	actor, err := s.gate.Require(ctx, actorID, access.Anyone...)
	if err != nil {
		return nil, err
	}
	if actor.Role.IsStaff() {
		return s.repo.List(ctx)
	}
	return s.repo.ListByRequester(ctx, actor.ID)
}

func (s *Service) Get(ctx context.Context, actorID, id int64) (*domain.Reservation, error) {
	actor, err := s.gate.Require(ctx, actorID, access.Anyone...)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsStaff() && r.RequesterID != actor.ID {
		return nil, fmt.Errorf("%w: reservation %d belongs to another actor", domain.ErrAccessDenied, id)
	}
	return r, nil
}

// Decide approves or rejects a pending reservation. Approval reserves the
// item in the same transaction; if the item is no longer available nothing
// changes and ErrConflict is returned.
func (s *Service) Decide(ctx context.Context, id int64, decision domain.Decision, staffID int64) (*domain.Reservation, error) {
	if _, err := s.gate.Require(ctx, staffID, access.Staff...); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation id is required", domain.ErrValidation)
	}

	now := s.now().UTC()
	var (
		r   *domain.Reservation
		err error
		ev  domain.StatusEventType
	)
	switch decision {
	case domain.DecisionApprove:
		r, err = s.repo.Approve(ctx, id, staffID, now)
		ev = domain.EventReservationApproved
	case domain.DecisionReject:
		r, err = s.repo.Reject(ctx, id, staffID, now)
		ev = domain.EventReservationRejected
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrValidation, decision)
	}
	if err != nil {
		return nil, err
	}

	s.publish(r, ev, staffID, now)
	return r, nil
}

func (s *Service) publish(r *domain.Reservation, typ domain.StatusEventType, actorID int64, at time.Time) {
	if s.publisher == nil {
		return
	}
	var status string
	if typ == domain.EventReservationApproved {
		status = string(domain.EquipmentReserved)
	}
	s.publisher.Publish(domain.StatusEvent{
		Type:          typ,
		EquipmentID:   r.EquipmentID,
		ReservationID: r.ID,
		Status:        status,
		ActorID:       actorID,
		At:            at,
	})
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrValidation, field)
	}
	return d, nil
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
