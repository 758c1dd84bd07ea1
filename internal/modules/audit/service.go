// Package audit recomputes each item's status from its reservations and
// checkout records and reports, or repairs, any item whose stored status
// disagrees.
package audit

import (
	"context"
	"log"
	"time"

	"equiplend/internal/domain"
)

type EquipmentStore interface {
	List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error)
	RepairStatus(ctx context.Context, id int64, stored domain.EquipmentStatus, at time.Time) (domain.EquipmentStatus, bool, error)
}

type CheckoutStore interface {
	ListPending(ctx context.Context) ([]domain.Reservation, error)
	ListOpen(ctx context.Context) ([]domain.CheckoutRecord, error)
}

// Drift is an item whose stored status differs from the derived one.
type Drift struct {
	EquipmentID int64                  `json:"equipment_id"`
	Name        string                 `json:"name"`
	Stored      domain.EquipmentStatus `json:"stored"`
	Derived     domain.EquipmentStatus `json:"derived"`
	Fixed       bool                   `json:"fixed"`
}

type Service struct {
	equipment EquipmentStore
	checkouts CheckoutStore
	now       func() time.Time
}

func NewService(equipment EquipmentStore, checkouts CheckoutStore) *Service {
	return &Service{equipment: equipment, checkouts: checkouts, now: time.Now}
}

// Run compares every item against a snapshot of lending state. The snapshot
// spans several reads, so with fix set each drifting item is re-derived and
// written in its own transaction, and only while its stored status is still
// the one the snapshot saw. Fixed stays false for items that moved meanwhile.
func (s *Service) Run(ctx context.Context, fix bool) ([]Drift, error) {
	items, err := s.equipment.List(ctx, domain.EquipmentFilter{})
	if err != nil {
		return nil, err
	}
	open, err := s.checkouts.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.checkouts.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	derived := Derive(open, pending)

	var drifts []Drift
	for _, e := range items {
		want, ok := derived[e.ID]
		if !ok {
			want = domain.EquipmentAvailable
		}
		if want == e.Status {
			continue
		}

		d := Drift{EquipmentID: e.ID, Name: e.Name, Stored: e.Status, Derived: want}
		if fix {
			derived, written, err := s.equipment.RepairStatus(ctx, e.ID, e.Status, s.now().UTC())
			if err != nil {
				return drifts, err
			}
			d.Derived = derived
			d.Fixed = written
		}
		log.Printf("status_drift equipment_id=%d stored=%s derived=%s fixed=%t", d.EquipmentID, d.Stored, d.Derived, d.Fixed)
		drifts = append(drifts, d)
	}

	return drifts, nil
}

// Derive maps item ids to the status implied by lending state: checked out
// while a record is open, reserved while an approved reservation awaits
// checkout. Items absent from the map are available.
func Derive(open []domain.CheckoutRecord, pending []domain.Reservation) map[int64]domain.EquipmentStatus {
	hasOpen := make(map[int64]bool, len(open))
	for _, rec := range open {
		hasOpen[rec.EquipmentID] = true
	}
	out := make(map[int64]domain.EquipmentStatus, len(open)+len(pending))
	for _, r := range pending {
		out[r.EquipmentID] = domain.DeriveStatus(hasOpen[r.EquipmentID], true)
	}
	for id := range hasOpen {
		out[id] = domain.DeriveStatus(true, false)
	}
	return out
}
