package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	datagramsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wavectl",
			Subsystem: "session",
			Name:      "datagrams_received_total",
			Help:      "Datagrams received by packet tag.",
		},
		[]string{"tag"},
	)
	sessionAborts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wavectl",
			Subsystem: "session",
			Name:      "aborts_total",
			Help:      "Sessions reset by a validation failure.",
		},
	)
	sessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wavectl",
			Subsystem: "session",
			Name:      "started_total",
			Help:      "Sessions that completed the handshake.",
		},
	)
	mailboxDrops = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wavectl",
			Subsystem: "mailbox",
			Name:      "drops_total",
			Help:      "Control values overwritten before consumption.",
		},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wavectl",
			Subsystem: "scheduler",
			Name:      "tick_duration_seconds",
			Help:      "Work time per actuation tick, sleep excluded.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	framesCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wavectl",
			Subsystem: "scheduler",
			Name:      "frames_committed_total",
			Help:      "Frames flushed to the LED controller.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			datagramsReceived,
			sessionAborts,
			sessionsStarted,
			mailboxDrops,
			tickDuration,
			framesCommitted,
		)
	})
}

func RecordDatagram(tag string) {
	RegisterMetrics()
	datagramsReceived.WithLabelValues(tag).Inc()
}

func RecordAbort() {
	RegisterMetrics()
	sessionAborts.Inc()
}

func RecordSessionStart() {
	RegisterMetrics()
	sessionsStarted.Inc()
}

func RecordMailboxDrop() {
	RegisterMetrics()
	mailboxDrops.Inc()
}

func RecordTick(duration time.Duration, committed bool) {
	RegisterMetrics()
	tickDuration.Observe(duration.Seconds())
	if committed {
		framesCommitted.Inc()
	}
}

// ServeMetrics exposes the prometheus registry on addr. It blocks and
// is intended to run on its own goroutine.
func ServeMetrics(addr string) error {
	RegisterMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
