package domain

import "time"

type StatusEventType string

const (
	EventReservationRequested StatusEventType = "reservation_requested"
	EventReservationApproved  StatusEventType = "reservation_approved"
	EventReservationRejected  StatusEventType = "reservation_rejected"
	EventCheckedOut           StatusEventType = "checked_out"
	EventCheckedIn            StatusEventType = "checked_in"
	EventEquipmentChanged     StatusEventType = "equipment_changed"
	EventEquipmentDeleted     StatusEventType = "equipment_deleted"
)

// StatusEvent describes a committed transition. It is published after the
// transaction that produced it has succeeded.
type StatusEvent struct {
	Type          StatusEventType `json:"type"`
	EquipmentID   int64           `json:"equipment_id"`
	ReservationID int64           `json:"reservation_id,omitempty"`
	Status        string          `json:"status,omitempty"`
	ActorID       int64           `json:"actor_id"`
	At            time.Time       `json:"at"`
}
