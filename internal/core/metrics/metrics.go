package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the fetch and check counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the stock tracker collectors on a private registry.
// All methods are safe on a nil receiver so callers can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal       *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	checksTotal      *prometheus.CounterVec
	alertsSent       prometheus.Counter
	deliveryFailures prometheus.Counter
	availableItems   prometheus.Gauge
}

// New creates and registers the collectors under the given namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inventory_fetch_total",
			Help:      "Count of upstream availability fetches by caller and outcome.",
		}, []string{"caller", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inventory_fetch_duration_seconds",
			Help:      "Latency of upstream availability fetches.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"caller"}),
		checksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Count of unattended stock checks by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		alertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_sent_total",
			Help:      "Number of stock alert emails accepted by the mail server.",
		}),
		deliveryFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_delivery_failures_total",
			Help:      "Number of stock alert emails that could not be delivered.",
		}),
		availableItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available_items",
			Help:      "Available records seen by the most recent fetch.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.fetchTotal,
		m.fetchDuration,
		m.checksTotal,
		m.alertsSent,
		m.deliveryFailures,
		m.availableItems,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveFetch records one upstream fetch.
func (m *Metrics) ObserveFetch(caller string, took time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(caller, outcome(err)).Inc()
	m.fetchDuration.WithLabelValues(caller).Observe(took.Seconds())
}

// ObserveCheck records one unattended check.
func (m *Metrics) ObserveCheck(trigger string, err error) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(trigger, outcome(err)).Inc()
}

// SetAvailable sets the number of available records from the latest fetch.
func (m *Metrics) SetAvailable(n int) {
	if m == nil {
		return
	}
	m.availableItems.Set(float64(n))
}

// AlertSent counts a delivered alert.
func (m *Metrics) AlertSent() {
	if m == nil {
		return
	}
	m.alertsSent.Inc()
}

// DeliveryFailed counts an alert that failed to send.
func (m *Metrics) DeliveryFailed() {
	if m == nil {
		return
	}
	m.deliveryFailures.Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
