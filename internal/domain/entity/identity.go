package entity

import "time"

// Identity is an authenticated account. Its ID never changes and is shared with the Profile.
type Identity struct {
	ID               string         `bson:"_id" json:"id"`
	Email            string         `bson:"email" json:"email"`
	PasswordHash     string         `bson:"password_hash" json:"-"`
	Metadata         SignupMetadata `bson:"metadata" json:"metadata"`
	EmailConfirmedAt *time.Time     `bson:"email_confirmed_at,omitempty" json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `bson:"updated_at" json:"updated_at"`
}

// SignupMetadata is captured at signup and used to build the Profile on confirmation.
type SignupMetadata struct {
	FirstName string   `bson:"first_name" json:"first_name"`
	LastName  string   `bson:"last_name" json:"last_name"`
	Role      UserRole `bson:"role,omitempty" json:"role,omitempty"`
}

// IsConfirmed reports whether the identity left the pending-confirmation state.
func (i *Identity) IsConfirmed() bool {
	return i.EmailConfirmedAt != nil
}

// RequestedRole returns the signup role, falling back to the default role.
func (m SignupMetadata) RequestedRole() UserRole {
	if m.Role.Valid() {
		return m.Role
	}
	return DefaultRole()
}

// NewProfile builds the initial active Profile for a confirmed identity.
func (i *Identity) NewProfile(now time.Time) *Profile {
	p := &Profile{
		ID:        i.ID,
		Role:      i.Metadata.RequestedRole(),
		Status:    ProfileStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.SetNames(i.Metadata.FirstName, i.Metadata.LastName)
	return p
}
