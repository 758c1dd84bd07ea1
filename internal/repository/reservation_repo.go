package repository

import (
	"context"
	"fmt"
	"time"

	"equiplend/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	RequesterID   int64      `gorm:"column:requester_id;not null;index"`
	EquipmentID   int64      `gorm:"column:equipment_id;not null;index"`
	RequestedDate time.Time  `gorm:"column:requested_date;not null"`
	ReturnDate    *time.Time `gorm:"column:return_date"`
	Status        string     `gorm:"column:status;size:20;not null;index"`
	DecidedBy     *int64     `gorm:"column:decided_by"`
	DecidedAt     *time.Time `gorm:"column:decided_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:            m.ID,
		RequesterID:   m.RequesterID,
		EquipmentID:   m.EquipmentID,
		RequestedDate: m.RequestedDate,
		ReturnDate:    m.ReturnDate,
		Status:        domain.ReservationStatus(m.Status),
		DecidedBy:     m.DecidedBy,
		DecidedAt:     m.DecidedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		EquipmentID:   r.EquipmentID,
		RequestedDate: r.RequestedDate,
		ReturnDate:    r.ReturnDate,
		Status:        string(r.Status),
		DecidedBy:     r.DecidedBy,
		DecidedAt:     r.DecidedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toDomainReservations(rows []reservationModel) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out
}

// Create inserts a reservation. Equipment availability is not consulted:
// exclusion happens when the reservation is approved.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classify(err)
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, classify(err)
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	var rows []reservationModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	return toDomainReservations(rows), nil
}

func (r *ReservationRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.Reservation, error) {
	var rows []reservationModel
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return toDomainReservations(rows), nil
}

// Approve moves a pending reservation to approved and its equipment from
// available to reserved in one transaction. Both writes are conditional, so
// of two racing approvals (or an approval racing a delete) only one wins.
func (r *ReservationRepository) Approve(ctx context.Context, id, staffID int64, at time.Time) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := decidePending(tx, id, domain.ReservationApproved, staffID, at)
		if err != nil {
			return err
		}

		res := tx.Model(&equipmentModel{}).
			Where("id = ? AND status = ?", m.EquipmentID, string(domain.EquipmentAvailable)).
			Updates(map[string]any{"status": string(domain.EquipmentReserved), "updated_at": at})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var eq equipmentModel
			if err := tx.Select("id", "status").First(&eq, m.EquipmentID).Error; err != nil {
				return err
			}
			return fmt.Errorf("%w: equipment %d is %s", domain.ErrConflict, eq.ID, eq.Status)
		}

		out = toDomainReservation(*m)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Reject moves a pending reservation to rejected. Equipment is untouched.
func (r *ReservationRepository) Reject(ctx context.Context, id, staffID int64, at time.Time) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := decidePending(tx, id, domain.ReservationRejected, staffID, at)
		if err != nil {
			return err
		}
		out = toDomainReservation(*m)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func decidePending(tx *gorm.DB, id int64, to domain.ReservationStatus, staffID int64, at time.Time) (*reservationModel, error) {
	var m reservationModel
	if err := tx.First(&m, id).Error; err != nil {
		return nil, err
	}
	if domain.ReservationStatus(m.Status) != domain.ReservationPending {
		return nil, fmt.Errorf("%w: reservation %d is %s", domain.ErrConflict, id, m.Status)
	}

	res := tx.Model(&reservationModel{}).
		Where("id = ? AND status = ?", id, string(domain.ReservationPending)).
		Updates(map[string]any{
			"status":     string(to),
			"decided_by": staffID,
			"decided_at": at,
			"updated_at": at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: reservation %d already decided", domain.ErrConflict, id)
	}

	m.Status = string(to)
	m.DecidedBy = &staffID
	m.DecidedAt = &at
	m.UpdatedAt = at
	return &m, nil
}
