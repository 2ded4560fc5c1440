package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterCheckins            prometheus.Counter
	CounterDailyCheckins       prometheus.Counter
	CounterRecapsAssembled     prometheus.Counter
	CounterRecapFallbacks      prometheus.Counter
	CounterPhotosUploaded      prometheus.Counter
	CounterMealsLogged         prometheus.Counter
	CounterCoachJobs           *prometheus.CounterVec
	CounterHandleRequestPanic  prometheus.Counter
	CounterCheckinsBackups     prometheus.Counter
	CounterRateLimitedRequests prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistCheckinsBackupDuration prometheus.Histogram
	HistCoachGenDuration       prometheus.Histogram
	HistogramRequestDuration   *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("backend", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("backend", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterCheckins := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "checkins",
		Help:      "The total number of submitted weekly check-ins",
	})
	counterDailyCheckins := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "daily_checkins",
		Help:      "The total number of logged daily check-ins",
	})
	counterRecapsAssembled := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recaps_assembled",
		Help:      "The total number of assembled check-in recaps",
	})
	counterRecapFallbacks := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "recap_fallbacks",
		Help:      "Recaps where the coach text was unusable and the deterministic fallback was served",
	})
	counterPhotosUploaded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "photos_uploaded",
		Help:      "The total number of uploaded progress photos",
	})
	counterMealsLogged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "meals_logged",
		Help:      "The total number of logged meals",
	})
	counterCoachJobs := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "coach_jobs",
		Help:      "The total number of coach generation jobs, by outcome",
	}, []string{"status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterCheckinsBackups := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "checkins_backed_up",
		Help:      "Number of check-ins backed up to google drive",
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

	histCheckinsBackupDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.001, 0.01, 0.1, 1, 10,
				60, 120, 240, 480, 1000, 2000,
				4000, 10000,
			},
			Name: "checkins_backup_duration_seconds",
			Help: "Total duration of a single check-ins backup in seconds",
		},
	)
	histCoachGenDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
			Name:      "coach_gen_duration_seconds",
			Help:      "Duration of a single coach generation call in seconds",
		},
	)

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterCheckins:            counterCheckins,
		CounterDailyCheckins:       counterDailyCheckins,
		CounterRecapsAssembled:     counterRecapsAssembled,
		CounterRecapFallbacks:      counterRecapFallbacks,
		CounterPhotosUploaded:      counterPhotosUploaded,
		CounterMealsLogged:         counterMealsLogged,
		CounterCoachJobs:           counterCoachJobs,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterCheckinsBackups:     counterCheckinsBackups,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		HistCheckinsBackupDuration: histCheckinsBackupDuration,
		HistCoachGenDuration:       histCoachGenDuration,
		HistogramRequestDuration:   histogramRequestDuration,
	}
}
