package worker

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// metrics registration on the default registry can only happen once per
// process, so tests share one instance.
var (
	testMetricsOnce sync.Once
	testMetrics     *PosterMetrics
)

func sharedMetrics() *PosterMetrics {
	testMetricsOnce.Do(func() {
		testMetrics = NewPosterMetrics()
	})
	return testMetrics
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.HealthPort != 9091 {
		t.Errorf("HealthPort = %d, want 9091", settings.HealthPort)
	}
	if settings.MetricsPort != 9092 {
		t.Errorf("MetricsPort = %d, want 9092", settings.MetricsPort)
	}
	if settings.RunTimeout != 10*time.Minute {
		t.Errorf("RunTimeout = %v, want 10m", settings.RunTimeout)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Run("empty environment yields defaults", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "")
		t.Setenv("WORKER_METRICS_PORT", "")
		t.Setenv("RUN_TIMEOUT", "")

		settings := LoadSettingsFromEnv(discardLogger(), sharedMetrics())

		if settings != DefaultSettings() {
			t.Errorf("settings = %+v, want defaults", settings)
		}
	})

	t.Run("valid overrides are applied", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "8081")
		t.Setenv("WORKER_METRICS_PORT", "8082")
		t.Setenv("RUN_TIMEOUT", "5m")

		settings := LoadSettingsFromEnv(discardLogger(), sharedMetrics())

		if settings.HealthPort != 8081 || settings.MetricsPort != 8082 {
			t.Errorf("ports = %d/%d, want 8081/8082", settings.HealthPort, settings.MetricsPort)
		}
		if settings.RunTimeout != 5*time.Minute {
			t.Errorf("RunTimeout = %v, want 5m", settings.RunTimeout)
		}
	})

	t.Run("invalid values fall back per field", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "80")      // privileged
		t.Setenv("WORKER_METRICS_PORT", "nonsense")
		t.Setenv("RUN_TIMEOUT", "2h") // above range

		settings := LoadSettingsFromEnv(discardLogger(), sharedMetrics())

		if settings != DefaultSettings() {
			t.Errorf("settings = %+v, want defaults after fallback", settings)
		}
	})

	t.Run("one bad field does not affect the others", func(t *testing.T) {
		t.Setenv("WORKER_HEALTH_PORT", "8085")
		t.Setenv("WORKER_METRICS_PORT", "")
		t.Setenv("RUN_TIMEOUT", "30s") // below range

		settings := LoadSettingsFromEnv(discardLogger(), sharedMetrics())

		if settings.HealthPort != 8085 {
			t.Errorf("HealthPort = %d, want 8085", settings.HealthPort)
		}
		if settings.RunTimeout != DefaultSettings().RunTimeout {
			t.Errorf("RunTimeout = %v, want default", settings.RunTimeout)
		}
	})
}
