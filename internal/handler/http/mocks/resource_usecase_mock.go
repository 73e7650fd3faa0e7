package mocks

import (
	"context"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// MockProfileUsecase records the principal of the last call.
type MockProfileUsecase struct {
	Err           error
	LastPrincipal entity.Principal
	LastID        string
	MockProfile   entity.Profile
}

var _ usecasecontract.IProfileUseCase = (*MockProfileUsecase)(nil)

func NewMockProfileUsecase() *MockProfileUsecase {
	return &MockProfileUsecase{
		MockProfile: entity.Profile{
			ID:       "mock-identity-id",
			FullName: "Test User",
			Role:     entity.UserRoleStudent,
			Status:   entity.ProfileStatusActive,
		},
	}
}

func (m *MockProfileUsecase) record(p entity.Principal, id string) (*entity.Profile, error) {
	m.LastPrincipal, m.LastID = p, id
	if m.Err != nil {
		return nil, m.Err
	}
	profile := m.MockProfile
	return &profile, nil
}

func (m *MockProfileUsecase) GetProfile(ctx context.Context, principal entity.Principal, id string) (*entity.Profile, error) {
	return m.record(principal, id)
}

func (m *MockProfileUsecase) UpdateOwnProfile(ctx context.Context, principal entity.Principal, firstName, lastName string) (*entity.Profile, error) {
	p, err := m.record(principal, principal.ID)
	if err == nil {
		p.SetNames(firstName, lastName)
	}
	return p, err
}

func (m *MockProfileUsecase) ListProfiles(ctx context.Context, principal entity.Principal, page, pageSize int) ([]entity.Profile, int64, error) {
	p, err := m.record(principal, "")
	if err != nil {
		return nil, 0, err
	}
	return []entity.Profile{*p}, 1, nil
}

func (m *MockProfileUsecase) SetRole(ctx context.Context, principal entity.Principal, id string, role entity.UserRole) (*entity.Profile, error) {
	p, err := m.record(principal, id)
	if err == nil {
		p.Role = role
	}
	return p, err
}

func (m *MockProfileUsecase) SetStatus(ctx context.Context, principal entity.Principal, id string, status entity.ProfileStatus) (*entity.Profile, error) {
	p, err := m.record(principal, id)
	if err == nil {
		p.Status = status
	}
	return p, err
}

// MockCourseUsecase returns MockCourse or Err from every method.
type MockCourseUsecase struct {
	Err           error
	LastPrincipal entity.Principal
	MockCourse    entity.Course
}

var _ usecasecontract.ICourseUseCase = (*MockCourseUsecase)(nil)

func NewMockCourseUsecase() *MockCourseUsecase {
	return &MockCourseUsecase{
		MockCourse: entity.Course{
			ID:           "course-1",
			CreatorID:    "creator-1",
			Title:        "Go in Practice",
			ThumbnailKey: "thumbs/course-1.png",
			State:        entity.CourseStateDraft,
		},
	}
}

func (m *MockCourseUsecase) one(p entity.Principal) (*entity.Course, error) {
	m.LastPrincipal = p
	if m.Err != nil {
		return nil, m.Err
	}
	c := m.MockCourse
	return &c, nil
}

func (m *MockCourseUsecase) CreateCourse(ctx context.Context, principal entity.Principal, in usecasecontract.CourseInput) (*entity.Course, error) {
	c, err := m.one(principal)
	if err == nil {
		c.Title = in.Title
		c.CreatorID = principal.ID
	}
	return c, err
}

func (m *MockCourseUsecase) GetCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error) {
	return m.one(principal)
}

func (m *MockCourseUsecase) ListPublishedCourses(ctx context.Context, page, pageSize int) ([]entity.Course, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return []entity.Course{m.MockCourse}, 1, nil
}

func (m *MockCourseUsecase) ListCreatorCourses(ctx context.Context, principal entity.Principal, creatorID string) ([]entity.Course, error) {
	c, err := m.one(principal)
	if err != nil {
		return nil, err
	}
	return []entity.Course{*c}, nil
}

func (m *MockCourseUsecase) UpdateCourse(ctx context.Context, principal entity.Principal, id string, in usecasecontract.CourseInput) (*entity.Course, error) {
	return m.one(principal)
}

func (m *MockCourseUsecase) PublishCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error) {
	c, err := m.one(principal)
	if err == nil {
		c.State = entity.CourseStatePublished
	}
	return c, err
}

func (m *MockCourseUsecase) UnpublishCourse(ctx context.Context, principal entity.Principal, id string) (*entity.Course, error) {
	return m.one(principal)
}

func (m *MockCourseUsecase) DeleteCourse(ctx context.Context, principal entity.Principal, id string) error {
	_, err := m.one(principal)
	return err
}

func (m *MockCourseUsecase) ThumbnailURL(course *entity.Course) string {
	if course.ThumbnailKey == "" {
		return ""
	}
	return "https://cdn.example.com/" + course.ThumbnailKey
}

// MockEnrollmentUsecase returns canned enrollments and playback URLs.
type MockEnrollmentUsecase struct {
	Err           error
	AlreadyExists bool
	LastPrincipal entity.Principal
	MediaURL      string
}

var _ usecasecontract.IEnrollmentUseCase = (*MockEnrollmentUsecase)(nil)

func (m *MockEnrollmentUsecase) Enroll(ctx context.Context, principal entity.Principal, courseID string) (*entity.Enrollment, bool, error) {
	m.LastPrincipal = principal
	if m.Err != nil {
		return nil, false, m.Err
	}
	return &entity.Enrollment{ID: "enr-1", UserID: principal.ID, CourseID: courseID}, !m.AlreadyExists, nil
}

func (m *MockEnrollmentUsecase) ListMyEnrollments(ctx context.Context, principal entity.Principal) ([]entity.Enrollment, error) {
	m.LastPrincipal = principal
	if m.Err != nil {
		return nil, m.Err
	}
	return []entity.Enrollment{{ID: "enr-1", UserID: principal.ID, CourseID: "course-1"}}, nil
}

func (m *MockEnrollmentUsecase) PlaybackURL(ctx context.Context, principal entity.Principal, courseID string) (*usecasecontract.PlaybackURL, error) {
	m.LastPrincipal = principal
	if m.Err != nil {
		return nil, m.Err
	}
	return &usecasecontract.PlaybackURL{URL: "https://api.example.com/api/v1/media/signed?token=t", ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (m *MockEnrollmentUsecase) ResolveSignedMedia(ctx context.Context, token string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.MediaURL, nil
}
