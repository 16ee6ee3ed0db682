package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter
	CounterSignups             prometheus.Counter
	CounterLogins              *prometheus.CounterVec
	CounterPlansGenerated      *prometheus.CounterVec
	CounterAICompletions       *prometheus.CounterVec
	CounterTipsCache           *prometheus.CounterVec
	CounterContactMessages     *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration      *prometheus.HistogramVec
	HistogramAICompletionDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("aitrainer", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("aitrainer", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
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
	counterSignups := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "signups",
		Help:      "The total number of created accounts",
	})
	counterLogins := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "logins",
		Help:      "The total number of login attempts",
	}, []string{"outcome"})
	counterPlansGenerated := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plans_generated",
		Help:      "The total number of generated plans",
	}, []string{"kind"})
	counterAICompletions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "ai_completions",
		Help:      "The total number of chat completion calls to the AI provider",
	}, []string{"purpose", "outcome"})
	counterTipsCache := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "tips_cache",
		Help:      "Workout tips cache lookups",
	}, []string{"result"})
	counterContactMessages := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "contact_messages",
		Help:      "The total number of contact form messages",
	}, []string{"outcome"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"route", "method", "status_code"})
	histogramAICompletionDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "ai_completion_duration_seconds",
		Help:      "Duration of a single chat completion call in seconds",
		Buckets:   []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
	})

	return &Manager{
		CounterRequests:               counterRequests,
		CounterHandleRequestPanic:     counterHandleRequestPanic,
		CounterRateLimitedRequests:    counterRateLimitedRequests,
		CounterSignups:                counterSignups,
		CounterLogins:                 counterLogins,
		CounterPlansGenerated:         counterPlansGenerated,
		CounterAICompletions:          counterAICompletions,
		CounterTipsCache:              counterTipsCache,
		CounterContactMessages:        counterContactMessages,
		GaugeRequests:                 gaugeRequests,
		GaugeLifeSignal:               gaugeLifeSignal,
		HistogramRequestDuration:      histogramRequestDuration,
		HistogramAICompletionDuration: histogramAICompletionDuration,
	}
}
