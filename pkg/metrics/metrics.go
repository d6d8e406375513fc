package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usof_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "usof_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// ReactionOpsTotal op: set / clear / switch; result: ok / conflict / not_found / forbidden / error
	ReactionOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usof_reaction_ops_total",
		Help: "Reaction ledger mutations by target kind, operation and result",
	}, []string{"target", "op", "result"})

	RatingRecomputeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usof_rating_recompute_total",
		Help: "Rating recomputations by scope",
	}, []string{"scope"})

	FeedFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "usof_feed_fetch_duration_seconds",
		Help:    "Time spent fetching per-category lists for a merged feed",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})

	MailSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usof_mail_sent_total",
		Help: "Outgoing mail by transport and result",
	}, []string{"transport", "result"})
)

// Handler 暴露 /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
