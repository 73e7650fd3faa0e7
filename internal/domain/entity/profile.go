package entity

import (
	"strings"
	"time"
)

// Profile is the public face of an Identity. Its role is the only source of elevated access.
type Profile struct {
	ID        string        `bson:"_id" json:"id"`
	FirstName string        `bson:"first_name" json:"first_name"`
	LastName  string        `bson:"last_name" json:"last_name"`
	FullName  string        `bson:"full_name" json:"full_name"`
	Role      UserRole      `bson:"role" json:"role"`
	Status    ProfileStatus `bson:"status" json:"status"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the marketplace
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleCreator UserRole = "creator"
	UserRoleAdmin   UserRole = "admin"
)

func DefaultRole() UserRole {
	return UserRoleStudent
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleCreator, UserRoleAdmin:
		return true
	}
	return false
}

// ProfileStatus is either active or suspended. Suspension is reversible by an admin.
type ProfileStatus string

const (
	ProfileStatusActive    ProfileStatus = "active"
	ProfileStatusSuspended ProfileStatus = "suspended"
)

func (s ProfileStatus) Valid() bool {
	return s == ProfileStatusActive || s == ProfileStatusSuspended
}

// FullNameOf joins first and last name, skipping empty parts.
func FullNameOf(firstName, lastName string) string {
	return strings.TrimSpace(strings.Join([]string{strings.TrimSpace(firstName), strings.TrimSpace(lastName)}, " "))
}

// SetNames updates the name fields and keeps FullName in sync.
func (p *Profile) SetNames(firstName, lastName string) {
	p.FirstName = strings.TrimSpace(firstName)
	p.LastName = strings.TrimSpace(lastName)
	p.FullName = FullNameOf(p.FirstName, p.LastName)
}
