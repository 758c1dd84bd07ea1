package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleLecturer   Role = "lecturer"
	RoleAdmin      Role = "admin"
	RoleMediaStaff Role = "media_staff"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RoleAdmin, RoleMediaStaff:
		return true
	}
	return false
}

// IsStaff reports whether r may approve reservations and hand out equipment.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleMediaStaff
}

func ParseRole(s string) (Role, bool) {
	r := Role(normalize(s))
	return r, r.Valid()
}

// Actor is a member of the organization. Actors are managed outside the
// lending engine and are read-only here.
type Actor struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
