// Package metrics holds the Prometheus collectors of the planner service.
package metrics

import (
	"strconv"
	"sync"

	"deliveryplanner/internal/core/domain/model/plan"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry served on /metrics.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// PlanRuns counts planning runs by outcome: ok, failures (some phase
	// failed) or error (no plan).
	PlanRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planner_runs_total", Help: "Planning runs by outcome."},
		[]string{"outcome"},
	)
	// PlanDuration records how long a planning run took.
	PlanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "planner_run_duration_seconds", Help: "Planning run duration in seconds.", Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}},
	)
	// PlannedOrders counts orders by where a run put them.
	PlannedOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planner_orders_total", Help: "Orders by planning result."},
		[]string{"result"},
	)
	// RejectedOrders counts rejected orders by reason.
	RejectedOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "planner_rejected_orders_total", Help: "Rejected orders by reason."},
		[]string{"reason"},
	)
	// CandidateRoutes records the enumeration size of a run.
	CandidateRoutes = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "planner_candidate_routes", Help: "Candidate routes enumerated per run.", Buckets: prometheus.ExponentialBuckets(1, 4, 10)},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry, once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(PlanRuns)
		Registry.MustRegister(PlanDuration)
		Registry.MustRegister(PlannedOrders)
		Registry.MustRegister(RejectedOrders)
		Registry.MustRegister(CandidateRoutes)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// PlanRecorder records planning runs. The zero value is ready to use.
type PlanRecorder struct{}

// ObservePlan records a finished run.
func (PlanRecorder) ObservePlan(p *plan.Plan) {
	outcome := "ok"
	if p.HasFailures() {
		outcome = "failures"
	}
	PlanRuns.WithLabelValues(outcome).Inc()
	PlanDuration.Observe(p.Stats.Duration.Seconds())
	CandidateRoutes.Observe(float64(p.Stats.CandidateRoutes))

	receipted := 0
	for _, r := range p.Receipted {
		receipted += r.Len()
	}
	PlannedOrders.WithLabelValues("assembled").Add(float64(p.ShippedOrders()))
	PlannedOrders.WithLabelValues("receipted").Add(float64(receipted))
	PlannedOrders.WithLabelValues("undelivered").Add(float64(len(p.Undelivered)))
	PlannedOrders.WithLabelValues("never_deliverable").Add(float64(len(p.NeverDeliverable)))
	for _, o := range p.Rejected() {
		RejectedOrders.WithLabelValues(o.Rejection().String()).Inc()
	}
}

// ObservePlanError records a run that produced no plan.
func (PlanRecorder) ObservePlanError() {
	PlanRuns.WithLabelValues("error").Inc()
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, path string, status int, seconds float64) {
	code := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, path, code).Inc()
	HTTPDuration.WithLabelValues(method, path, code).Observe(seconds)
}
