package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RoutesChecked     prometheus.Counter
	TicketsFound      prometheus.Counter
	NotificationsSent prometheus.Counter
	ErrorsCount       *prometheus.CounterVec
	CheckDuration     prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RoutesChecked: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_checked_total",
			Help:      "The total number of completed route checks",
		}),
		TicketsFound: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_found_total",
			Help:      "The total number of checks that discovered tickets",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of ticket alerts delivered",
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "route_check_duration_seconds",
			Help:      "Time taken to check one route across all its dates",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
