package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/domain/policy"
)

func TestRecorder_CountsPolicyDecisions(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	e := policy.NewEvaluator(r)

	e.Evaluate(entity.Anonymous(), policy.Resource{Kind: policy.KindCourse, Published: true}, policy.ActionRead)
	e.Evaluate(entity.Anonymous(), policy.Resource{Kind: policy.KindCourse}, policy.ActionRead)
	e.Evaluate(entity.Anonymous(), policy.Resource{Kind: policy.KindCourse}, policy.ActionRead)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.policyDecisions.WithLabelValues("course", "read", policy.RulePublishedCourse, "allow")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.policyDecisions.WithLabelValues("course", "read", policy.RuleDefaultDeny, "deny")))
}

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())
	r.ProvisionResult("created")
	r.ProvisionResult("deferred")
	r.ProvisionResult("deferred")
	r.ConfirmationResult("confirmed")
	r.ResolverSource("claims")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.profileProvisions.WithLabelValues("deferred")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.confirmations.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resolverLookups.WithLabelValues("claims")))
}
