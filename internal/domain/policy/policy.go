// Package policy decides whether a principal may perform an action on a resource.
//
// Evaluation is a pure function of the principal (taken from session claims) and the
// resource attributes the caller already loaded. The package has no storage dependency,
// so deciding access can never query the table being protected to find the caller's role.
package policy

import (
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionAdminister covers role and status changes.
	ActionAdminister Action = "administer"
)

type ResourceKind string

const (
	KindCourse        ResourceKind = "course"
	KindCourseContent ResourceKind = "course_content"
	KindProfile       ResourceKind = "profile"
	KindEnrollment    ResourceKind = "enrollment"
)

// Resource carries the attributes rules need. OwnerID is the course creator, the profile id
// or the enrolled user depending on Kind.
type Resource struct {
	Kind      ResourceKind
	ID        string
	OwnerID   string
	Published bool
	// Enrolled is set on course content when the principal holds an enrollment.
	Enrolled bool
	// PublicCreator is set on a profile that created at least one published course.
	PublicCreator bool
}

// Rule names reported on decisions.
const (
	RuleSuspended         = "suspended"
	RulePublishedCourse   = "published_course"
	RuleCourseCreator     = "course_creator"
	RuleCreatorCreates    = "creator_creates_course"
	RuleAdmin             = "admin"
	RuleOwnProfile        = "own_profile"
	RulePublicAttribution = "public_attribution"
	RuleEnrolledContent   = "enrolled_content"
	RuleOwnEnrollment     = "own_enrollment"
	RuleDefaultDeny       = "default_deny"
)

type Decision struct {
	Allowed bool
	Rule    string
	// Err is nil when allowed, otherwise one of entity.ErrSuspended,
	// entity.ErrAuthRequired or entity.ErrForbidden.
	Err error
}

func allow(rule string) Decision { return Decision{Allowed: true, Rule: rule} }

// Observer receives every decision. Implementations must not block.
type Observer interface {
	ObserveDecision(kind ResourceKind, action Action, d Decision)
}

// Evaluator evaluates the rule table and reports decisions to an optional observer.
type Evaluator struct {
	observer Observer
}

func NewEvaluator(observer Observer) *Evaluator {
	return &Evaluator{observer: observer}
}

func (e *Evaluator) Evaluate(p entity.Principal, r Resource, a Action) Decision {
	d := Evaluate(p, r, a)
	if e != nil && e.observer != nil {
		e.observer.ObserveDecision(r.Kind, a, d)
	}
	return d
}

// Authorize is Evaluate returning only the denial error.
func (e *Evaluator) Authorize(p entity.Principal, r Resource, a Action) error {
	return e.Evaluate(p, r, a).Err
}

// Evaluate applies the rules in order; the first match wins.
func Evaluate(p entity.Principal, r Resource, a Action) Decision {
	self := p.IsAuthenticated() && p.ID == r.OwnerID

	if p.IsSuspended() {
		if r.Kind == KindProfile && a == ActionRead && self {
			return allow(RuleOwnProfile)
		}
		return Decision{Rule: RuleSuspended, Err: entity.ErrSuspended}
	}

	if r.Kind == KindCourse {
		if a == ActionRead && r.Published {
			return allow(RulePublishedCourse)
		}
		switch a {
		case ActionRead, ActionUpdate, ActionDelete:
			if self {
				return allow(RuleCourseCreator)
			}
		case ActionCreate:
			if self && p.Role == entity.UserRoleCreator {
				return allow(RuleCreatorCreates)
			}
		}
	}

	if p.IsAuthenticated() && p.IsAdmin() {
		return allow(RuleAdmin)
	}

	switch r.Kind {
	case KindProfile:
		if a == ActionRead {
			if self {
				return allow(RuleOwnProfile)
			}
			if r.PublicCreator {
				return allow(RulePublicAttribution)
			}
		}
		if a == ActionUpdate && self {
			return allow(RuleOwnProfile)
		}
	case KindCourseContent:
		if a == ActionRead && p.IsAuthenticated() {
			if self {
				return allow(RuleCourseCreator)
			}
			if r.Enrolled {
				return allow(RuleEnrolledContent)
			}
		}
	case KindEnrollment:
		if self {
			switch a {
			case ActionRead, ActionDelete:
				return allow(RuleOwnEnrollment)
			case ActionCreate:
				if r.Published {
					return allow(RuleOwnEnrollment)
				}
			}
		}
	}

	if !p.IsAuthenticated() {
		return Decision{Rule: RuleDefaultDeny, Err: entity.ErrAuthRequired}
	}
	return Decision{Rule: RuleDefaultDeny, Err: entity.ErrForbidden}
}
