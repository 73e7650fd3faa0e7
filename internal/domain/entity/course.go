package entity

import "time"

// PublicationState of a course.
type PublicationState string

const (
	CourseStateDraft     PublicationState = "draft"
	CourseStatePublished PublicationState = "published"
)

// Course is owned by the creator identity that made it.
type Course struct {
	ID           string           `bson:"_id" json:"id"`
	CreatorID    string           `bson:"creator_id" json:"creator_id"`
	Title        string           `bson:"title" json:"title"`
	Description  string           `bson:"description" json:"description"`
	PriceCents   int64            `bson:"price_cents" json:"price_cents"`
	ThumbnailKey string           `bson:"thumbnail_key,omitempty" json:"thumbnail_key,omitempty"`
	VideoKey     string           `bson:"video_key,omitempty" json:"-"`
	State        PublicationState `bson:"state" json:"state"`
	PublishedAt  *time.Time       `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt    time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `bson:"updated_at" json:"updated_at"`
}

func (c *Course) IsPublished() bool {
	return c.State == CourseStatePublished
}

// Enrollment links an identity to a course and grants access to its content.
type Enrollment struct {
	ID         string    `bson:"_id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	CourseID   string    `bson:"course_id" json:"course_id"`
	EnrolledAt time.Time `bson:"enrolled_at" json:"enrolled_at"`
}
