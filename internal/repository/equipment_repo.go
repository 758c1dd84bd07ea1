package repository

import (
	"context"
	"fmt"
	"time"

	"equiplend/internal/domain"

	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

type equipmentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;size:200;not null"`
	Category    string    `gorm:"column:category;size:100;not null;index"`
	Description *string   `gorm:"column:description;type:text"`
	Condition   string    `gorm:"column:condition;size:10;not null"`
	Status      string    `gorm:"column:status;size:20;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

var inUseStatuses = []string{string(domain.EquipmentReserved), string(domain.EquipmentCheckedOut)}

func toDomainEquipment(m equipmentModel) *domain.Equipment {
	var desc string
	if m.Description != nil {
		desc = *m.Description
	}
	return &domain.Equipment{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Description: desc,
		Condition:   domain.Condition(m.Condition),
		Status:      domain.EquipmentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toEquipmentModel(e *domain.Equipment) equipmentModel {
	var desc *string
	if e.Description != "" {
		v := e.Description
		desc = &v
	}
	return equipmentModel{
		ID:          e.ID,
		Name:        e.Name,
		Category:    e.Category,
		Description: desc,
		Condition:   string(e.Condition),
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	m := toEquipmentModel(e)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classify(err)
	}
	*e = *toDomainEquipment(m)
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	var m equipmentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, classify(err)
	}
	return toDomainEquipment(m), nil
}

// List returns equipment in insertion order, narrowed by status and/or
// category when set.
func (r *EquipmentRepository) List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	q := r.db.WithContext(ctx).Model(&equipmentModel{})
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var rows []equipmentModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	out := make([]domain.Equipment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainEquipment(m))
	}
	return out, nil
}

// Update replaces every editable column of an existing item, status
// included.
func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur equipmentModel
		if err := tx.First(&cur, e.ID).Error; err != nil {
			return err
		}
		m := toEquipmentModel(e)
		res := tx.Model(&equipmentModel{}).
			Where("id = ?", e.ID).
			Updates(map[string]any{
				"name":        m.Name,
				"category":    m.Category,
				"description": m.Description,
				"condition":   m.Condition,
				"status":      m.Status,
				"updated_at":  e.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		cur.Name, cur.Category, cur.Description = m.Name, m.Category, m.Description
		cur.Condition, cur.Status, cur.UpdatedAt = m.Condition, m.Status, e.UpdatedAt
		*e = *toDomainEquipment(cur)
		return nil
	})
	return classify(err)
}

// Delete removes an item unless it is reserved or checked out. The status
// condition is part of the DELETE itself so a concurrent approval cannot
// slip in between the check and the write.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur equipmentModel
		if err := tx.First(&cur, id).Error; err != nil {
			return err
		}
		if domain.EquipmentStatus(cur.Status).InUse() {
			return fmt.Errorf("%w: equipment %d is %s", domain.ErrConflict, id, cur.Status)
		}
		res := tx.Where("id = ? AND status NOT IN ?", id, inUseStatuses).Delete(&equipmentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: equipment %d became in use", domain.ErrConflict, id)
		}
		return nil
	})
	return classify(err)
}

// RepairStatus re-derives one item's status from its open checkout records
// and approved reservations awaiting checkout, then writes it only while the
// item still holds stored. Both happen in one transaction. It returns the
// derived status and whether a row was written; false with a nil error means
// the item no longer drifts or changed underneath the caller.
func (r *EquipmentRepository) RepairStatus(ctx context.Context, id int64, stored domain.EquipmentStatus, at time.Time) (domain.EquipmentStatus, bool, error) {
	var (
		derived domain.EquipmentStatus
		written bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&checkoutModel{}).
			Where("equipment_id = ? AND checked_in_at IS NULL", id).
			Count(&open).Error; err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&reservationModel{}).
			Joins("LEFT JOIN checkout_records ON checkout_records.reservation_id = reservations.id").
			Where("reservations.equipment_id = ? AND reservations.status = ? AND checkout_records.id IS NULL",
				id, string(domain.ReservationApproved)).
			Count(&pending).Error; err != nil {
			return err
		}

		derived = domain.DeriveStatus(open > 0, pending > 0)
		if derived == stored {
			return nil
		}

		res := tx.Model(&equipmentModel{}).
			Where("id = ? AND status = ?", id, string(stored)).
			Updates(map[string]any{"status": string(derived), "updated_at": at})
		if res.Error != nil {
			return res.Error
		}
		written = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return "", false, classify(err)
	}
	return derived, written, nil
}
