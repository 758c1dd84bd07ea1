package repository

import (
	"context"
	"fmt"
	"time"

	"equiplend/internal/domain"

	"gorm.io/gorm"
)

type CheckoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) *CheckoutRepository {
	return &CheckoutRepository{db: db}
}

type checkoutModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	ReservationID     int64      `gorm:"column:reservation_id;not null;uniqueIndex:ux_checkout_records_reservation"`
	EquipmentID       int64      `gorm:"column:equipment_id;not null;index"`
	CheckedOutBy      int64      `gorm:"column:checked_out_by;not null"`
	CheckedOutAt      time.Time  `gorm:"column:checked_out_at;not null;index"`
	CheckedInBy       *int64     `gorm:"column:checked_in_by"`
	CheckedInAt       *time.Time `gorm:"column:checked_in_at"`
	ReturnedCondition *string    `gorm:"column:returned_condition;size:10"`
}

func (checkoutModel) TableName() string { return "checkout_records" }

func toDomainCheckout(m checkoutModel) *domain.CheckoutRecord {
	var cond *domain.Condition
	if m.ReturnedCondition != nil {
		c := domain.Condition(*m.ReturnedCondition)
		cond = &c
	}
	return &domain.CheckoutRecord{
		ID:                m.ID,
		ReservationID:     m.ReservationID,
		EquipmentID:       m.EquipmentID,
		CheckedOutBy:      m.CheckedOutBy,
		CheckedOutAt:      m.CheckedOutAt,
		CheckedInBy:       m.CheckedInBy,
		CheckedInAt:       m.CheckedInAt,
		ReturnedCondition: cond,
	}
}

func toDomainCheckouts(rows []checkoutModel) []domain.CheckoutRecord {
	out := make([]domain.CheckoutRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCheckout(m))
	}
	return out
}

// Open creates the checkout record of an approved reservation and marks its
// equipment checked out. The unique index on reservation_id makes the insert
// itself the exactly-once guard; the existence check before it only gives a
// clearer error in the common case.
func (r *CheckoutRepository) Open(ctx context.Context, reservationID, staffID int64, at time.Time) (*domain.CheckoutRecord, error) {
	var out *domain.CheckoutRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res reservationModel
		if err := tx.First(&res, reservationID).Error; err != nil {
			return err
		}
		if domain.ReservationStatus(res.Status) != domain.ReservationApproved {
			return fmt.Errorf("%w: reservation %d is %s", domain.ErrConflict, reservationID, res.Status)
		}

		var n int64
		if err := tx.Model(&checkoutModel{}).Where("reservation_id = ?", reservationID).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: reservation %d already checked out", domain.ErrConflict, reservationID)
		}

		m := checkoutModel{
			ReservationID: reservationID,
			EquipmentID:   res.EquipmentID,
			CheckedOutBy:  staffID,
			CheckedOutAt:  at,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		upd := tx.Model(&equipmentModel{}).
			Where("id = ? AND status = ?", res.EquipmentID, string(domain.EquipmentReserved)).
			Updates(map[string]any{"status": string(domain.EquipmentCheckedOut), "updated_at": at})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return fmt.Errorf("%w: equipment %d is not reserved", domain.ErrConflict, res.EquipmentID)
		}

		out = toDomainCheckout(m)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Close checks in the open record of a reservation, records the returned
// condition on the record and the equipment, and releases the equipment.
// The update is conditioned on checked_in_at still being NULL.
func (r *CheckoutRepository) Close(ctx context.Context, reservationID, staffID int64, cond domain.Condition, at time.Time) (*domain.CheckoutRecord, error) {
	var out *domain.CheckoutRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c := string(cond)
		res := tx.Model(&checkoutModel{}).
			Where("reservation_id = ? AND checked_in_at IS NULL", reservationID).
			Updates(map[string]any{
				"checked_in_at":      at,
				"checked_in_by":      staffID,
				"returned_condition": c,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: reservation %d has no open checkout", domain.ErrConflict, reservationID)
		}

		var m checkoutModel
		if err := tx.Where("reservation_id = ?", reservationID).First(&m).Error; err != nil {
			return err
		}

		if err := tx.Model(&equipmentModel{}).
			Where("id = ?", m.EquipmentID).
			Updates(map[string]any{
				"condition":  c,
				"status":     string(domain.EquipmentAvailable),
				"updated_at": at,
			}).Error; err != nil {
			return err
		}

		out = toDomainCheckout(m)
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// ListPending returns approved reservations that have not been handed out
// yet, earliest requested date first.
func (r *CheckoutRepository) ListPending(ctx context.Context) ([]domain.Reservation, error) {
	var rows []reservationModel
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Select("reservations.*").
		Joins("LEFT JOIN checkout_records ON checkout_records.reservation_id = reservations.id").
		Where("reservations.status = ? AND checkout_records.id IS NULL", string(domain.ReservationApproved)).
		Order("reservations.requested_date ASC, reservations.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return toDomainReservations(rows), nil
}

// ListOpen returns records not yet checked in, oldest checkout first.
func (r *CheckoutRepository) ListOpen(ctx context.Context) ([]domain.CheckoutRecord, error) {
	var rows []checkoutModel
	err := r.db.WithContext(ctx).
		Where("checked_in_at IS NULL").
		Order("checked_out_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return toDomainCheckouts(rows), nil
}

func (r *CheckoutRepository) ListByEquipment(ctx context.Context, equipmentID int64) ([]domain.CheckoutRecord, error) {
	var rows []checkoutModel
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("checked_out_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, classify(err)
	}
	return toDomainCheckouts(rows), nil
}
