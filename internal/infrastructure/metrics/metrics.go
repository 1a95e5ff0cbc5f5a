package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	uploads         *prometheus.CounterVec
	jobTransitions  *prometheus.CounterVec
	publishAttempts *prometheus.CounterVec
	transcodeTime   *prometheus.HistogramVec
	queueDepth      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_publisher",
			Name:      "uploads_total",
			Help:      "Accepted uploads by media kind and result.",
		}, []string{"kind", "result"}),
		jobTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_publisher",
			Name:      "job_transitions_total",
			Help:      "Video job status transitions by target status.",
		}, []string{"status"}),
		publishAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "media_publisher",
			Name:      "publish_attempts_total",
			Help:      "Remote publish calls by target and result.",
		}, []string{"target", "result"}),
		transcodeTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "media_publisher",
			Name:      "transcode_duration_seconds",
			Help:      "Time spent transcoding media.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"kind"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "media_publisher",
			Name:      "job_queue_depth",
			Help:      "Video jobs waiting for a worker.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.uploads,
		m.jobTransitions,
		m.publishAttempts,
		m.transcodeTime,
		m.queueDepth,
	)
	return m
}

func (m *Metrics) Upload(kind string, err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(kind, result(err)).Inc()
}

func (m *Metrics) JobTransition(status string) {
	if m == nil {
		return
	}
	m.jobTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) PublishAttempt(target string, err error) {
	if m == nil {
		return
	}
	m.publishAttempts.WithLabelValues(target, result(err)).Inc()
}

func (m *Metrics) ObserveTranscode(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.transcodeTime.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
