package dto

import (
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type IdentityResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
	CreatedAt string `json:"created_at"`
}

func ToIdentityResponse(identity entity.Identity) IdentityResponse {
	return IdentityResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		Confirmed: identity.IsConfirmed(),
		CreatedAt: identity.CreatedAt.Format(time.RFC3339),
	}
}

type ProfileResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

func ToProfileResponse(p entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  p.FullName,
		Role:      string(p.Role),
		Status:    string(p.Status),
	}
}

// LoginResponse is the DTO for a successful login. Profile is absent while profile creation
// is still pending.
type LoginResponse struct {
	Identity     IdentityResponse `json:"identity"`
	Profile      *ProfileResponse `json:"profile,omitempty"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ConfirmEmailResponse is the {success, error} shape clients of confirm-email expect.
type ConfirmEmailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type CourseResponse struct {
	ID           string     `json:"id"`
	CreatorID    string     `json:"creator_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PriceCents   int64      `json:"price_cents"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	State        string     `json:"state"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToCourseResponse(c entity.Course, thumbnailURL string) CourseResponse {
	return CourseResponse{
		ID:           c.ID,
		CreatorID:    c.CreatorID,
		Title:        c.Title,
		Description:  c.Description,
		PriceCents:   c.PriceCents,
		ThumbnailURL: thumbnailURL,
		State:        string(c.State),
		PublishedAt:  c.PublishedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type EnrollmentResponse struct {
	ID         string    `json:"id"`
	CourseID   string    `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

func ToEnrollmentResponse(e entity.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{ID: e.ID, CourseID: e.CourseID, EnrolledAt: e.EnrolledAt}
}

type PlaybackResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PageResponse wraps one page of a list endpoint.
type PageResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
