package domain

import "time"

type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationApproved ReservationStatus = "approved"
	ReservationRejected ReservationStatus = "rejected"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationApproved, ReservationRejected:
		return true
	}
	return false
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func ParseDecision(s string) (Decision, bool) {
	d := Decision(normalize(s))
	return d, d == DecisionApprove || d == DecisionReject
}

type Reservation struct {
	ID            int64             `json:"id"`
	RequesterID   int64             `json:"requester_id"`
	EquipmentID   int64             `json:"equipment_id"`
	RequestedDate time.Time         `json:"requested_date"`
	ReturnDate    *time.Time        `json:"return_date,omitempty"`
	Status        ReservationStatus `json:"status"`
	DecidedBy     *int64            `json:"decided_by,omitempty"`
	DecidedAt     *time.Time        `json:"decided_at,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CheckoutRecord is the physical hand-off of an approved reservation.
// A record is open until CheckedInAt is set.
type CheckoutRecord struct {
	ID                int64      `json:"id"`
	ReservationID     int64      `json:"reservation_id"`
	EquipmentID       int64      `json:"equipment_id"`
	CheckedOutBy      int64      `json:"checked_out_by"`
	CheckedOutAt      time.Time  `json:"checked_out_at"`
	CheckedInBy       *int64     `json:"checked_in_by,omitempty"`
	CheckedInAt       *time.Time `json:"checked_in_at,omitempty"`
	ReturnedCondition *Condition `json:"returned_condition,omitempty"`
}

func (r *CheckoutRecord) Open() bool { return r.CheckedInAt == nil }
