// ABOUTME: Prometheus instrumentation for planning runs and the plan cache
// ABOUTME: Collectors register against a caller-supplied registerer

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/markalston/network-capacity-planner/models"
)

// Recorder holds the planner's collectors. A nil *Recorder records nothing.
type Recorder struct {
	plans        *prometheus.CounterVec
	shortfalls   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	averagePower *prometheus.GaugeVec
	routersAdded *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		plans: f.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_plans_total",
			Help: "Completed planning runs by escalation policy and outcome.",
		}, []string{"policy", "outcome"}),
		shortfalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_shortfalls_total",
			Help: "Unmet requirements reported by planning runs.",
		}, []string{"policy", "reason"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "capacity_plan_duration_seconds",
			Help:    "Time spent computing a plan.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"policy"}),
		averagePower: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "capacity_average_power_watts",
			Help: "Daily average power of the most recent plan.",
		}, []string{"policy"}),
		routersAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_routers_added_total",
			Help: "Routers installed by escalation beyond the optimal sizing.",
		}, []string{"tier"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_plan_cache_lookups_total",
			Help: "Plan cache lookups by result.",
		}, []string{"result"}),
	}
}

// ObservePlan records a finished plan
func (r *Recorder) ObservePlan(plan *models.PlanResult, elapsed time.Duration) {
	if r == nil || plan == nil {
		return
	}
	policy := string(plan.Policy)
	r.plans.WithLabelValues(policy, string(plan.Outcome)).Inc()
	r.duration.WithLabelValues(policy).Observe(elapsed.Seconds())
	r.averagePower.WithLabelValues(policy).Set(plan.Power.Average)

	for _, s := range plan.Shortfalls {
		r.shortfalls.WithLabelValues(policy, string(s.Reason)).Inc()
	}
	for _, a := range plan.Topology.RoutersAdded {
		r.routersAdded.WithLabelValues(models.TierOne.String()).Add(float64(a.T1))
		r.routersAdded.WithLabelValues(models.TierTwo.String()).Add(float64(a.T2))
	}
}

// CacheHit counts a plan served from cache
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss counts a plan that had to be computed
func (r *Recorder) CacheMiss() {
	if r == nil {
		return
	}
	r.cacheLookups.WithLabelValues("miss").Inc()
}
