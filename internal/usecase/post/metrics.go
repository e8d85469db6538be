package post

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for digest run monitoring.
var (
	// digestRunsTotal tracks completed runs by overall result.
	digestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_runs_total",
			Help: "Total number of digest runs",
		},
		[]string{"result"}, // result: success|partial|failed
	)

	// channelPostsTotal tracks per-channel delivery results.
	channelPostsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digest_channel_posts_total",
			Help: "Total number of per-channel digest posts",
		},
		[]string{"channel", "status"}, // status: sent|failed
	)

	// runDuration tracks full-run duration.
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "digest_run_duration_seconds",
			Help:    "Digest run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	// lastSuccessTimestamp records when a run last completed with every
	// channel sent. Alerting keys off staleness of this gauge.
	lastSuccessTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "digest_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last fully successful digest run",
		},
	)
)
