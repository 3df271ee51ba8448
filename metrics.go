package jesssits

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "jesssits"

// Submission outcomes recorded by the submissions counter.
const (
	outcomeAccepted = "accepted"
	outcomeInvalid  = "invalid"
	outcomeSpam     = "spam"
	outcomeFailed   = "failed"
	outcomeLimited  = "rate_limited"
)

// Metrics holds the site's Prometheus collectors.
type Metrics struct {
	Submissions          *prometheus.CounterVec
	ContentRefreshErrors prometheus.Counter
	LoginFailures        prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics registers the site's collectors with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Form submissions received, by form and outcome",
		}, []string{"form", "outcome"}),

		ContentRefreshErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "content_refresh_errors_total",
			Help:      "Failed refreshes of the content snapshot",
		}),

		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "admin_login_failures_total",
			Help:      "Rejected admin login attempts",
		}),

		gatherer: reg,
	}
}

func (m *Metrics) submission(form, outcome string) {
	m.Submissions.WithLabelValues(form, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
