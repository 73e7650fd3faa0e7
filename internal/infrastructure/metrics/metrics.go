package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
)

// Recorder holds the service's Prometheus collectors.
type Recorder struct {
	policyDecisions   *prometheus.CounterVec
	profileProvisions *prometheus.CounterVec
	confirmations     *prometheus.CounterVec
	resolverLookups   *prometheus.CounterVec
}

// NewRecorder registers collectors on reg. Pass prometheus.DefaultRegisterer in main and a
// fresh registry in tests.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		policyDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursely",
			Name:      "policy_decisions_total",
			Help:      "Access policy decisions by resource kind, action, rule and outcome.",
		}, []string{"kind", "action", "rule", "outcome"}),
		profileProvisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursely",
			Name:      "profile_provisions_total",
			Help:      "Profile creation attempts by result.",
		}, []string{"result"}),
		confirmations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursely",
			Name:      "email_confirmations_total",
			Help:      "Email confirmation requests by result.",
		}, []string{"result"}),
		resolverLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursely",
			Name:      "profile_resolver_lookups_total",
			Help:      "How principals were resolved: from claims or by direct profile lookup.",
		}, []string{"source"}),
	}
}

var _ policy.Observer = (*Recorder)(nil)

func (r *Recorder) ObserveDecision(kind policy.ResourceKind, action policy.Action, d policy.Decision) {
	outcome := "deny"
	if d.Allowed {
		outcome = "allow"
	}
	r.policyDecisions.WithLabelValues(string(kind), string(action), d.Rule, outcome).Inc()
}

// ProvisionResult is one of created, existing, deferred, failed.
func (r *Recorder) ProvisionResult(result string) {
	r.profileProvisions.WithLabelValues(result).Inc()
}

func (r *Recorder) ConfirmationResult(result string) {
	r.confirmations.WithLabelValues(result).Inc()
}

// ResolverSource is either claims or lookup.
func (r *Recorder) ResolverSource(source string) {
	r.resolverLookups.WithLabelValues(source).Inc()
}
