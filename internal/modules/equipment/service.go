// Package equipment is the registry of lendable items.
package equipment

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
	repo      EquipmentRepository
	gate      Gate
	publisher Publisher
	now       func() time.Time
}

func NewService(repo EquipmentRepository, gate Gate, publisher Publisher) *Service {
	return &Service{
		repo:      repo,
		gate:      gate,
		publisher: publisher,
		now:       time.Now,
	}
}

// List returns items in insertion order. Open to every caller.
func (s *Service) List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *f.Status)
	}
	f.Category = strings.TrimSpace(f.Category)
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: equipment id is required", domain.ErrValidation)
	}
	return s.repo.GetByID(ctx, id)
}

// Create registers a new item. New items always start available.
func (s *Service) Create(ctx context.Context, actorID int64, req CreateEquipmentRequest) (*domain.Equipment, error) {
	if _, err := s.gate.Require(ctx, actorID, access.Staff...); err != nil {
		return nil, err
	}

	req.trim()
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	cond, ok := domain.ParseCondition(req.Condition)
	if !ok {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, req.Condition)
	}

	now := s.now().UTC()
	e := &domain.Equipment{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Condition:   cond,
		Status:      domain.EquipmentAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.publish(e.ID, e.Status, domain.EventEquipmentChanged, actorID, now)
	return e, nil
}

// Update overwrites every editable field. No transition rule is applied to
// status.
func (s *Service) Update(ctx context.Context, actorID, id int64, req UpdateEquipmentRequest) (*domain.Equipment, error) {
	if _, err := s.gate.Require(ctx, actorID, access.Staff...); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: equipment id is required", domain.ErrValidation)
	}

	req.trim()
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	cond, ok := domain.ParseCondition(req.Condition)
	if !ok {
		return nil, fmt.Errorf("%w: unknown condition %q", domain.ErrValidation, req.Condition)
	}
	status, ok := domain.ParseEquipmentStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, req.Status)
	}

	now := s.now().UTC()
	e := &domain.Equipment{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Condition:   cond,
		Status:      status,
		UpdatedAt:   now,
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	s.publish(e.ID, e.Status, domain.EventEquipmentChanged, actorID, now)
	return e, nil
}

// Delete removes an item that is neither reserved nor checked out.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.gate.Require(ctx, actorID, access.Staff...); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: equipment id is required", domain.ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(id, "", domain.EventEquipmentDeleted, actorID, s.now().UTC())
	return nil
}

func (s *Service) publish(id int64, status domain.EquipmentStatus, typ domain.StatusEventType, actorID int64, at time.Time) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.StatusEvent{
		Type:        typ,
		EquipmentID: id,
		Status:      string(status),
		ActorID:     actorID,
		At:          at,
	})
}
