package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	pkgconfig "oryx-daily/internal/pkg/config"
)

// PosterMetrics provides Prometheus metrics for the daemon's scheduling
// layer. Per-channel delivery metrics live in the post usecase; these cover
// the loop around it.
//
// Embedded metrics (from ConfigMetrics):
//   - poster_config_load_timestamp
//   - poster_config_fallbacks_total
//   - poster_config_fallback_active
//
// Scheduler metrics:
//   - poster_scheduled_fires_total: fires triggered by the daemon loop
//   - poster_next_fire_timestamp_seconds: Unix timestamp of the next fire
type PosterMetrics struct {
	*pkgconfig.ConfigMetrics

	// ScheduledFiresTotal counts runs triggered by the schedule, as
	// opposed to one-shot invocations.
	ScheduledFiresTotal prometheus.Counter

	// NextFireTimestamp exposes when the daemon will fire next. A stuck
	// daemon shows up as this gauge falling into the past.
	NextFireTimestamp prometheus.Gauge
}

// NewPosterMetrics creates the daemon metrics on the default registry.
func NewPosterMetrics() *PosterMetrics {
	return &PosterMetrics{
		ConfigMetrics: pkgconfig.NewConfigMetrics("poster"),

		ScheduledFiresTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "poster_scheduled_fires_total",
			Help: "Total number of digest runs triggered by the schedule",
		}),

		NextFireTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "poster_next_fire_timestamp_seconds",
			Help: "Unix timestamp of the next scheduled digest run",
		}),
	}
}

// RecordFire counts one scheduled fire.
func (m *PosterMetrics) RecordFire() {
	m.ScheduledFiresTotal.Inc()
}

// SetNextFire records the next scheduled fire time.
func (m *PosterMetrics) SetNextFire(t time.Time) {
	m.NextFireTimestamp.Set(float64(t.Unix()))
}
