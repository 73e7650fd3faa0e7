package entity

import "github.com/golang-jwt/jwt/v5"

// Claims are the session-token claims. Role and Status are embedded at issuance and refresh
// so authorization never needs to look the caller up again.
type Claims struct {
	UserID string
	Role   UserRole
	Status ProfileStatus
	jwt.RegisteredClaims
}

// HasProfileClaims reports whether role and status were embedded when the token was issued.
func (c *Claims) HasProfileClaims() bool {
	return c != nil && c.Role.Valid() && c.Status.Valid()
}

// Principal is the caller as seen by the access policy. The zero value is anonymous.
type Principal struct {
	ID     string
	Role   UserRole
	Status ProfileStatus
}

func Anonymous() Principal {
	return Principal{}
}

func (p Principal) IsAuthenticated() bool {
	return p.ID != ""
}

func (p Principal) IsSuspended() bool {
	return p.Status == ProfileStatusSuspended
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin && !p.IsSuspended()
}
