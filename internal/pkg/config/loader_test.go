package config

import (
	"testing"
	"time"
)

func TestLoadEnvString(t *testing.T) {
	t.Run("unset returns default", func(t *testing.T) {
		got := LoadEnvString("ORYX_TEST_UNSET", "fallback")
		if got != "fallback" {
			t.Errorf("LoadEnvString() = %q, want %q", got, "fallback")
		}
	})

	t.Run("set returns value", func(t *testing.T) {
		t.Setenv("ORYX_TEST_STR", "value")
		got := LoadEnvString("ORYX_TEST_STR", "fallback")
		if got != "value" {
			t.Errorf("LoadEnvString() = %q, want %q", got, "value")
		}
	})
}

func TestLoadEnvWithFallback(t *testing.T) {
	t.Run("valid value passes validation", func(t *testing.T) {
		t.Setenv("ORYX_TEST_TZ", "UTC")
		result := LoadEnvWithFallback("ORYX_TEST_TZ", "Africa/Casablanca", ValidateTimezone)
		if result.FallbackApplied {
			t.Fatalf("unexpected fallback, warnings: %v", result.Warnings)
		}
		if result.Value.(string) != "UTC" {
			t.Errorf("Value = %v, want UTC", result.Value)
		}
	})

	t.Run("invalid value falls back with warning", func(t *testing.T) {
		t.Setenv("ORYX_TEST_TZ", "Not/AZone")
		result := LoadEnvWithFallback("ORYX_TEST_TZ", "Africa/Casablanca", ValidateTimezone)
		if !result.FallbackApplied {
			t.Fatal("expected fallback to be applied")
		}
		if result.Value.(string) != "Africa/Casablanca" {
			t.Errorf("Value = %v, want default", result.Value)
		}
		if len(result.Warnings) != 1 {
			t.Errorf("Warnings = %v, want exactly one", result.Warnings)
		}
	})

	t.Run("unset uses default without warning", func(t *testing.T) {
		result := LoadEnvWithFallback("ORYX_TEST_TZ_UNSET", "Africa/Casablanca", ValidateTimezone)
		if result.FallbackApplied || len(result.Warnings) != 0 {
			t.Errorf("unset variable should default silently, got %+v", result)
		}
	})
}

func TestLoadEnvInt(t *testing.T) {
	t.Run("parses and validates", func(t *testing.T) {
		t.Setenv("ORYX_TEST_INT", "48")
		result := LoadEnvInt("ORYX_TEST_INT", 24, func(v int) error {
			return ValidateIntRange(v, 1, 168)
		})
		if result.FallbackApplied || result.Value.(int) != 48 {
			t.Errorf("LoadEnvInt() = %+v, want 48 without fallback", result)
		}
	})

	t.Run("non-numeric falls back", func(t *testing.T) {
		t.Setenv("ORYX_TEST_INT", "twenty")
		result := LoadEnvInt("ORYX_TEST_INT", 24, nil)
		if !result.FallbackApplied || result.Value.(int) != 24 {
			t.Errorf("LoadEnvInt() = %+v, want default 24 with fallback", result)
		}
	})

	t.Run("out of range falls back", func(t *testing.T) {
		t.Setenv("ORYX_TEST_INT", "999")
		result := LoadEnvInt("ORYX_TEST_INT", 24, func(v int) error {
			return ValidateIntRange(v, 1, 168)
		})
		if !result.FallbackApplied || result.Value.(int) != 24 {
			t.Errorf("LoadEnvInt() = %+v, want default 24 with fallback", result)
		}
	})
}

func TestLoadEnvDuration(t *testing.T) {
	t.Run("parses duration string", func(t *testing.T) {
		t.Setenv("ORYX_TEST_DUR", "15m")
		result := LoadEnvDuration("ORYX_TEST_DUR", 10*time.Minute, ValidatePositiveDuration)
		if result.FallbackApplied || result.Value.(time.Duration) != 15*time.Minute {
			t.Errorf("LoadEnvDuration() = %+v, want 15m without fallback", result)
		}
	})

	t.Run("garbage falls back", func(t *testing.T) {
		t.Setenv("ORYX_TEST_DUR", "soon")
		result := LoadEnvDuration("ORYX_TEST_DUR", 10*time.Minute, nil)
		if !result.FallbackApplied || result.Value.(time.Duration) != 10*time.Minute {
			t.Errorf("LoadEnvDuration() = %+v, want default with fallback", result)
		}
	})
}

func TestLoadEnvBool(t *testing.T) {
	t.Run("true value", func(t *testing.T) {
		t.Setenv("ORYX_TEST_BOOL", "true")
		result := LoadEnvBool("ORYX_TEST_BOOL", false)
		if result.FallbackApplied || result.Value.(bool) != true {
			t.Errorf("LoadEnvBool() = %+v, want true", result)
		}
	})

	t.Run("invalid value falls back", func(t *testing.T) {
		t.Setenv("ORYX_TEST_BOOL", "yes please")
		result := LoadEnvBool("ORYX_TEST_BOOL", true)
		if !result.FallbackApplied || result.Value.(bool) != true {
			t.Errorf("LoadEnvBool() = %+v, want default true with fallback", result)
		}
	})
}
