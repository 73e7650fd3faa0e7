package entity

import "time"

// Event topics published on the application event bus.
const (
	TopicIdentitySignedUp      = "identity.signed_up"
	TopicProfileProvisionRetry = "profile.provision.retry"
	TopicProfileStatusChanged  = "profile.status_changed"
)

type IdentitySignedUp struct {
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ProfileProvisionRetry asks the provisioner to try creating a profile again.
type ProfileProvisionRetry struct {
	IdentityID string    `json:"identity_id"`
	Attempt    int       `json:"attempt"`
	LastError  string    `json:"last_error"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ProfileStatusChanged struct {
	ProfileID  string        `json:"profile_id"`
	Status     ProfileStatus `json:"status"`
	ChangedBy  string        `json:"changed_by"`
	OccurredAt time.Time     `json:"occurred_at"`
}
