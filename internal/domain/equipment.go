package domain

import "time"

type EquipmentStatus string

const (
	EquipmentAvailable  EquipmentStatus = "available"
	EquipmentReserved   EquipmentStatus = "reserved"
	EquipmentCheckedOut EquipmentStatus = "checked_out"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentReserved, EquipmentCheckedOut:
		return true
	}
	return false
}

// InUse reports whether an item in this status is bound to a reservation.
func (s EquipmentStatus) InUse() bool {
	return s == EquipmentReserved || s == EquipmentCheckedOut
}

// DeriveStatus is the status implied by lending state. An open checkout
// record wins over an approved reservation that has not been handed out.
func DeriveStatus(open, pending bool) EquipmentStatus {
	switch {
	case open:
		return EquipmentCheckedOut
	case pending:
		return EquipmentReserved
	}
	return EquipmentAvailable
}

func ParseEquipmentStatus(s string) (EquipmentStatus, bool) {
	st := EquipmentStatus(normalize(s))
	return st, st.Valid()
}

type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionGood Condition = "good"
	ConditionFair Condition = "fair"
	ConditionPoor Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// ValidReturn reports whether c may be recorded at check-in. Returned
// equipment is never "new".
func (c Condition) ValidReturn() bool {
	return c.Valid() && c != ConditionNew
}

func ParseCondition(s string) (Condition, bool) {
	c := Condition(normalize(s))
	return c, c.Valid()
}

type Equipment struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Condition   Condition       `json:"condition"`
	Status      EquipmentStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EquipmentFilter selects a listing. A nil Status and empty Category list
// everything.
type EquipmentFilter struct {
	Status   *EquipmentStatus
	Category string
}
