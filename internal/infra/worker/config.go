// Package worker holds the daemon's operational plumbing: ambient settings,
// the health endpoints, and scheduling metrics. Everything here is
// fail-open; the poster's core configuration lives in internal/config and
// fails closed.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	pkgconfig "oryx-daily/internal/pkg/config"
)

// Settings holds the operational knobs for the daemon process. None of
// them change what gets posted; an invalid value degrades to the default
// with a warning instead of keeping the poster from its schedule.
type Settings struct {
	// HealthPort serves /health and /health/ready.
	// Range: 1024-65535. Default: 9091.
	HealthPort int

	// MetricsPort serves the Prometheus /metrics endpoint.
	// Range: 1024-65535. Default: 9092.
	MetricsPort int

	// RunTimeout bounds one full digest run, generation through delivery
	// for every channel. Range: 1m-1h. Default: 10 minutes.
	RunTimeout time.Duration
}

// DefaultSettings returns the production defaults.
func DefaultSettings() Settings {
	return Settings{
		HealthPort:  9091,
		MetricsPort: 9092,
		RunTimeout:  10 * time.Minute,
	}
}

// LoadSettingsFromEnv loads worker settings from the environment with
// fallback to defaults on invalid values.
//
// Environment variables:
//   - WORKER_HEALTH_PORT: health endpoint port (default: 9091)
//   - WORKER_METRICS_PORT: metrics endpoint port (default: 9092)
//   - RUN_TIMEOUT: per-run timeout, e.g. "10m" (default: 10 minutes)
func LoadSettingsFromEnv(logger *slog.Logger, metrics *PosterMetrics) Settings {
	settings := DefaultSettings()
	fallbackApplied := false

	portValidator := func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1024, 65535)
	}

	result := pkgconfig.LoadEnvInt("WORKER_HEALTH_PORT", settings.HealthPort, portValidator)
	settings.HealthPort = result.Value.(int)
	fallbackApplied = recordFallback(logger, metrics, "health_port", result) || fallbackApplied

	result = pkgconfig.LoadEnvInt("WORKER_METRICS_PORT", settings.MetricsPort, portValidator)
	settings.MetricsPort = result.Value.(int)
	fallbackApplied = recordFallback(logger, metrics, "metrics_port", result) || fallbackApplied

	result = pkgconfig.LoadEnvDuration("RUN_TIMEOUT", settings.RunTimeout, func(d time.Duration) error {
		if d < time.Minute || d > time.Hour {
			return fmt.Errorf("run timeout %v outside valid range [1m, 1h]", d)
		}
		return nil
	})
	settings.RunTimeout = result.Value.(time.Duration)
	fallbackApplied = recordFallback(logger, metrics, "run_timeout", result) || fallbackApplied

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return settings
}

// recordFallback logs and counts one field's fallback, reporting whether a
// fallback was applied.
func recordFallback(logger *slog.Logger, metrics *PosterMetrics, field string, result pkgconfig.LoadResult) bool {
	if !result.FallbackApplied {
		return false
	}

	metrics.RecordFallback(field)
	for _, warning := range result.Warnings {
		logger.Warn("worker setting fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
	return true
}
