package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type fakeLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
}

func (l *fakeLogger) Debugf(string, ...interface{}) {}
func (l *fakeLogger) Infof(string, ...interface{})  {}
func (l *fakeLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}
func (l *fakeLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
func (l *fakeLogger) Fatalf(format string, args ...interface{}) {}

type fakeConfig struct {
	sendEmail   bool
	adminCode   string
	maxAttempts int
	retryDelay  time.Duration
}

func (c fakeConfig) GetSendConfirmationEmail() bool                 { return c.sendEmail }
func (c fakeConfig) GetAppBaseURL() string                          { return "http://app.test" }
func (c fakeConfig) GetAccessTokenExpiry() time.Duration            { return 15 * time.Minute }
func (c fakeConfig) GetRefreshTokenExpiry() time.Duration           { return time.Hour }
func (c fakeConfig) GetEmailConfirmationTokenExpiry() time.Duration { return time.Hour }
func (c fakeConfig) GetAdminAccessCode() string                     { return c.adminCode }
func (c fakeConfig) GetSignedURLExpiry() time.Duration              { return 10 * time.Minute }
func (c fakeConfig) GetProfileProvisionMaxAttempts() int            { return c.maxAttempts }
func (c fakeConfig) GetProfileProvisionRetryDelay() time.Duration   { return c.retryDelay }

type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("missing @")
	}
	return nil
}

func (fakeValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

// fakeHasher prefixes instead of bcrypt so tests stay fast.
type fakeHasher struct{}

func (fakeHasher) HashPassword(p string) (string, error) { return "hashed:" + p, nil }
func (fakeHasher) ComparePasswordHash(p, h string) error {
	if h != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}
func (fakeHasher) HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
func (h fakeHasher) CheckHash(s, hash string) bool { return h.HashString(s) == hash }

type seqGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqGenerator) next() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.n
}

func (g *seqGenerator) NewUUID() string { return fmt.Sprintf("id-%d", g.next()) }
func (g *seqGenerator) GenerateRandomToken(n int) (string, error) {
	return fmt.Sprintf("rnd%d", g.next()), nil
}
func (g *seqGenerator) GenerateNumericCode(digits int) (string, error) {
	return fmt.Sprintf("%0*d", digits, g.next()), nil
}

type sentEmail struct {
	to, subject, body string
}

type fakeMailer struct {
	fail bool
	sent []sentEmail
}

func (m *fakeMailer) SendEmail(_ context.Context, to, subject, body string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentEmail{to, subject, body})
	return nil
}

// linkToken extracts the verifier.secret token from the last confirmation email.
func (m *fakeMailer) linkToken() string {
	body := m.sent[len(m.sent)-1].body
	i := strings.Index(body, "token=")
	rest := body[i+len("token="):]
	return rest[:strings.IndexAny(rest, "\n ")]
}

func (m *fakeMailer) code() string {
	body := m.sent[len(m.sent)-1].body
	i := strings.Index(body, "code: ")
	return body[i+len("code: ") : i+len("code: ")+confirmationCodeDigits]
}

type published struct {
	topic string
	event any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *fakePublisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic, event})
	return nil
}

func (p *fakePublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.topic)
	}
	return out
}

type fakeIdentityRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{byID: map[string]*entity.Identity{}}
}

func (r *fakeIdentityRepo) CreateIdentity(_ context.Context, identity *entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == identity.Email {
			return entity.ErrConflict
		}
	}
	c := *identity
	r.byID[identity.ID] = &c
	return nil
}

func (r *fakeIdentityRepo) GetIdentityByID(_ context.Context, id string) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.byID[id]; ok {
		c := *i
		return &c, nil
	}
	return nil, entity.ErrNotFound
}

func (r *fakeIdentityRepo) GetIdentityByEmail(_ context.Context, email string) (*entity.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byID {
		if i.Email == email {
			c := *i
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeIdentityRepo) MarkEmailConfirmed(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	if i.EmailConfirmedAt == nil {
		i.EmailConfirmedAt = &at
	}
	return nil
}

func (r *fakeIdentityRepo) ClaimPendingIdentity(_ context.Context, id string, metadata entity.SignupMetadata, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	if i.EmailConfirmedAt == nil {
		i.PasswordHash = ""
		i.Metadata = metadata
		i.EmailConfirmedAt = &at
	}
	return nil
}

type fakeProfileRepo struct {
	mu          sync.Mutex
	byID        map[string]*entity.Profile
	failCreates int
	creates     int
	gets        int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byID: map[string]*entity.Profile{}}
}

func (r *fakeProfileRepo) CreateProfileIfAbsent(_ context.Context, p *entity.Profile) (*entity.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		return nil, false, errors.New("profiles table unavailable")
	}
	if existing, ok := r.byID[p.ID]; ok {
		c := *existing
		return &c, false, nil
	}
	r.creates++
	c := *p
	r.byID[p.ID] = &c
	return p, true, nil
}

func (r *fakeProfileRepo) GetProfileByID(_ context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if p, ok := r.byID[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, entity.ErrProfileNotFound
}

func (r *fakeProfileRepo) update(id string, fn func(*entity.Profile)) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrProfileNotFound
	}
	fn(p)
	c := *p
	return &c, nil
}

func (r *fakeProfileRepo) UpdateNames(_ context.Context, id, first, last, full string) (*entity.Profile, error) {
	return r.update(id, func(p *entity.Profile) { p.FirstName, p.LastName, p.FullName = first, last, full })
}

func (r *fakeProfileRepo) UpdateRole(_ context.Context, id string, role entity.UserRole) (*entity.Profile, error) {
	return r.update(id, func(p *entity.Profile) { p.Role = role })
}

func (r *fakeProfileRepo) UpdateStatus(_ context.Context, id string, status entity.ProfileStatus) (*entity.Profile, error) {
	return r.update(id, func(p *entity.Profile) { p.Status = status })
}

func (r *fakeProfileRepo) ListProfiles(_ context.Context, page, pageSize int) ([]entity.Profile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.Token
	order  []string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*entity.Token{}}
}

func (r *fakeTokenRepo) CreateToken(_ context.Context, t *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.tokens[t.ID] = &c
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTokenRepo) GetTokenByUserID(_ context.Context, userID string, tokenType entity.TokenType) (*entity.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.tokens[r.order[i]]
		if t.UserID == userID && t.TokenType == tokenType && !t.Revoke {
			c := *t
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeTokenRepo) UpdateToken(_ context.Context, id, hash string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return entity.ErrNotFound
	}
	t.TokenHash, t.ExpiresAt = hash, expiry
	return nil
}

func (r *fakeTokenRepo) GetTokenByVerifier(_ context.Context, verifier string) (*entity.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Verifier == verifier {
			c := *t
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeTokenRepo) RecordFailedAttempt(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return 0, entity.ErrNotFound
	}
	t.FailedAttempts++
	return t.FailedAttempts, nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return entity.ErrNotFound
	}
	t.Revoke = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllTokensForUser(_ context.Context, userID string, tokenType entity.TokenType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoke = true
		}
	}
	return nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*entity.Course
}

func newFakeCourseRepo(courses ...entity.Course) *fakeCourseRepo {
	r := &fakeCourseRepo{courses: map[string]*entity.Course{}}
	for i := range courses {
		c := courses[i]
		r.courses[c.ID] = &c
	}
	return r
}

func (r *fakeCourseRepo) CreateCourse(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetCourseByID(_ context.Context, id string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, entity.ErrNotFound
}

func (r *fakeCourseRepo) UpdateCourse(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[c.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) DeleteCourse(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) sorted(keep func(*entity.Course) bool) []entity.Course {
	out := []entity.Course{}
	for _, c := range r.courses {
		if keep(c) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeCourseRepo) ListPublishedCourses(_ context.Context, page, pageSize int) ([]entity.Course, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sorted(func(c *entity.Course) bool { return c.IsPublished() })
	return out, int64(len(out)), nil
}

func (r *fakeCourseRepo) ListCoursesByCreator(_ context.Context, creatorID string) ([]entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(c *entity.Course) bool { return c.CreatorID == creatorID }), nil
}

func (r *fakeCourseRepo) HasPublishedCourseByCreator(_ context.Context, creatorID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sorted(func(c *entity.Course) bool { return c.CreatorID == creatorID && c.IsPublished() })) > 0, nil
}

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments []entity.Enrollment
}

func (r *fakeEnrollmentRepo) CreateEnrollmentIfAbsent(_ context.Context, e *entity.Enrollment) (*entity.Enrollment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.enrollments {
		if r.enrollments[i].UserID == e.UserID && r.enrollments[i].CourseID == e.CourseID {
			c := r.enrollments[i]
			return &c, false, nil
		}
	}
	r.enrollments = append(r.enrollments, *e)
	return e, true, nil
}

func (r *fakeEnrollmentRepo) GetEnrollment(_ context.Context, userID, courseID string) (*entity.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.enrollments {
		if r.enrollments[i].UserID == userID && r.enrollments[i].CourseID == courseID {
			c := r.enrollments[i]
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *fakeEnrollmentRepo) ListEnrollmentsByUser(_ context.Context, userID string) ([]entity.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Enrollment{}
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) DeleteEnrollmentsByCourse(_ context.Context, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.enrollments[:0]
	for _, e := range r.enrollments {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	r.enrollments = kept
	return nil
}

type fakeStatusStore struct {
	statuses map[string]entity.ProfileStatus
}

func (s *fakeStatusStore) SetStatus(_ context.Context, id string, status entity.ProfileStatus) error {
	if s.statuses == nil {
		s.statuses = map[string]entity.ProfileStatus{}
	}
	s.statuses[id] = status
	return nil
}

func (s *fakeStatusStore) GetStatus(_ context.Context, id string) (entity.ProfileStatus, bool, error) {
	st, ok := s.statuses[id]
	return st, ok, nil
}

type fakeStorage struct{}

func (fakeStorage) PublicURL(key string) string { return "https://cdn.test/" + key }
func (fakeStorage) SignedURL(_ context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	return "https://api.test/media/signed?token=signed:" + key, time.Unix(0, 0).Add(ttl), nil
}
func (fakeStorage) VerifySignedURL(token string) (string, time.Time, error) {
	key, ok := strings.CutPrefix(token, "signed:")
	if !ok {
		return "", time.Time{}, entity.ErrInvalidToken
	}
	return key, time.Unix(600, 0), nil
}
func (fakeStorage) ProtectedURL(key string, expiresAt time.Time) (string, error) {
	return fmt.Sprintf("https://origin.test/%s?expires=%d", key, expiresAt.Unix()), nil
}

// fakeJWT encodes claims as plain strings.
type fakeJWT struct{}

func (fakeJWT) GenerateAccessToken(userID string, role entity.UserRole, status entity.ProfileStatus) (string, error) {
	return fmt.Sprintf("access|%s|%s|%s", userID, role, status), nil
}

var refreshSeq struct {
	sync.Mutex
	n int
}

func (fakeJWT) GenerateRefreshToken(userID string) (string, error) {
	refreshSeq.Lock()
	defer refreshSeq.Unlock()
	refreshSeq.n++
	return fmt.Sprintf("refresh|%s|%d", userID, refreshSeq.n), nil
}

func (fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 4 || parts[0] != "access" {
		return nil, entity.ErrInvalidToken
	}
	return &entity.Claims{UserID: parts[1], Role: entity.UserRole(parts[2]), Status: entity.ProfileStatus(parts[3])}, nil
}

func (fakeJWT) ParseRefreshToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 3 || parts[0] != "refresh" {
		return nil, entity.ErrInvalidToken
	}
	return &entity.Claims{UserID: parts[1]}, nil
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) inc(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[key]++
}

func (m *countingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

func (m *countingMetrics) ProvisionResult(r string)    { m.inc("provision:" + r) }
func (m *countingMetrics) ConfirmationResult(r string) { m.inc("confirm:" + r) }
func (m *countingMetrics) ResolverSource(s string)     { m.inc("resolver:" + s) }
