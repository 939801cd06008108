package ingest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the ingest pipeline metrics on a private registry, served
// from the consumer stats server.
type Collector struct {
	reg *prometheus.Registry

	Submissions *prometheus.CounterVec
	Admitted    *prometheus.CounterVec
	Dominated   *prometheus.CounterVec
	Invalid     *prometheus.CounterVec

	BuildDuration prometheus.Histogram

	ActiveConsumers prometheus.Gauge

	EventsPublished   prometheus.Counter
	EventsPublishErrs prometheus.Counter
	NATSConnected     prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinera_ingest_submissions_total",
			Help: "Total journey submissions received.",
		}, []string{"feed"}),
		Admitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinera_ingest_admitted_total",
			Help: "Total submissions admitted to a frontier.",
		}, []string{"feed"}),
		Dominated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinera_ingest_dominated_total",
			Help: "Total submissions rejected as dominated.",
		}, []string{"feed"}),
		Invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "itinera_ingest_invalid_total",
			Help: "Total submissions rejected as structurally invalid.",
		}, []string{"feed"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "itinera_ingest_build_duration_seconds",
			Help:    "Time taken to build and judge one submission.",
			Buckets: prometheus.DefBuckets,
		}),
		ActiveConsumers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "itinera_ingest_active_consumers",
			Help: "Number of running batch consumers.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "itinera_events_published_total",
			Help: "Total journey events published to NATS.",
		}),
		EventsPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "itinera_events_publish_errors_total",
			Help: "Total failed NATS publishes.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "itinera_nats_connected",
			Help: "Whether the NATS connection is up.",
		}),
	}

	reg.MustRegister(
		c.Submissions, c.Admitted, c.Dominated, c.Invalid,
		c.BuildDuration, c.ActiveConsumers,
		c.EventsPublished, c.EventsPublishErrs, c.NATSConnected,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// events.PublisherMetrics implementation

func (c *Collector) EventPublishedInc() {
	c.EventsPublished.Inc()
}

func (c *Collector) EventPublishErrInc() {
	c.EventsPublishErrs.Inc()
}

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}
