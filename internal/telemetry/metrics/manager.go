package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests               *prometheus.CounterVec
	CounterSessionsStarted        prometheus.Counter
	CounterSessionsCompleted      prometheus.Counter
	CounterSessionsCanceled       prometheus.Counter
	CounterSessionsFailed         prometheus.Counter
	CounterSetsSeeded             prometheus.Counter
	CounterTimerTransitions       *prometheus.CounterVec
	CounterTimerEventsDropped     prometheus.Counter
	CounterSnapshotSaveFailures   prometheus.Counter
	CounterNotificationsScheduled prometheus.Counter
	CounterNotificationsFailed    prometheus.Counter
	CounterHandleRequestPanic     prometheus.Counter
	CounterRateLimitedRequests    prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("liftlog", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("liftlog", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterSessionsStarted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_started",
		Help:      "The total number of sessions created, from a template or blank",
	})
	counterSessionsCompleted := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_completed",
		Help:      "The total number of finished sessions",
	})
	counterSessionsCanceled := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_canceled",
		Help:      "The total number of canceled sessions",
	})
	counterSessionsFailed := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_failed",
		Help:      "The total number of failed session instantiations",
	})
	counterSetsSeeded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sets_seeded",
		Help:      "The total number of sets seeded from previous session data",
	})
	counterTimerTransitions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "timer_transitions",
		Help:      "The total number of timer state transitions",
	}, []string{"timer", "transition"})
	counterTimerEventsDropped := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "timer_events_dropped",
		Help:      "The total number of timer events dropped on slow subscribers",
	})
	counterSnapshotSaveFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "timer_snapshot_save_failures",
		Help:      "The total number of failed timer snapshot writes",
	})
	counterNotificationsScheduled := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notifications_scheduled",
		Help:      "The total number of scheduled rest notifications",
	})
	counterNotificationsFailed := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "notifications_failed",
		Help:      "The total number of rest notifications that failed to schedule or send",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "current_requests",
		Help:        "Current number of requests served",
		ConstLabels: nil,
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        "life_signal",
		Help:        "Shows whether the service is alive",
		ConstLabels: nil,
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:               counterRequests,
		CounterSessionsStarted:        counterSessionsStarted,
		CounterSessionsCompleted:      counterSessionsCompleted,
		CounterSessionsCanceled:       counterSessionsCanceled,
		CounterSessionsFailed:         counterSessionsFailed,
		CounterSetsSeeded:             counterSetsSeeded,
		CounterTimerTransitions:       counterTimerTransitions,
		CounterTimerEventsDropped:     counterTimerEventsDropped,
		CounterSnapshotSaveFailures:   counterSnapshotSaveFailures,
		CounterNotificationsScheduled: counterNotificationsScheduled,
		CounterNotificationsFailed:    counterNotificationsFailed,
		CounterHandleRequestPanic:     counterHandleRequestPanic,
		CounterRateLimitedRequests:    counterRateLimitedRequests,
		GaugeRequests:                 gaugeRequests,
		GaugeLifeSignal:               gaugeLifeSignal,
		HistogramRequestDuration:      histogramRequestDuration,
	}
}
