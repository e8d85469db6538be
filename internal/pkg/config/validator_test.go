package config

import (
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "default posting time", value: "08:30", wantHour: 8, wantMinute: 30},
		{name: "no leading zero", value: "8:30", wantHour: 8, wantMinute: 30},
		{name: "midnight", value: "00:00", wantHour: 0, wantMinute: 0},
		{name: "last minute of day", value: "23:59", wantHour: 23, wantMinute: 59},
		{name: "hour out of range", value: "24:00", wantErr: true},
		{name: "minute out of range", value: "08:60", wantErr: true},
		{name: "negative hour", value: "-1:30", wantErr: true},
		{name: "missing minute", value: "08", wantErr: true},
		{name: "too many fields", value: "08:30:00", wantErr: true},
		{name: "not a number", value: "ab:cd", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseClockTime(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClockTime(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if hour != tt.wantHour || minute != tt.wantMinute {
				t.Errorf("ParseClockTime(%q) = %d:%d, want %d:%d", tt.value, hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	if err := ValidateTimezone("Africa/Casablanca"); err != nil {
		t.Errorf("expected Africa/Casablanca to be valid, got %v", err)
	}
	if err := ValidateTimezone("UTC"); err != nil {
		t.Errorf("expected UTC to be valid, got %v", err)
	}
	if err := ValidateTimezone("Mars/Olympus_Mons"); err == nil {
		t.Error("expected unknown zone to be rejected")
	}
	if err := ValidateTimezone(""); err == nil {
		t.Error("expected empty zone to be rejected")
	}
}

func TestValidateCronSchedule(t *testing.T) {
	if err := ValidateCronSchedule("30 8 * * *"); err != nil {
		t.Errorf("expected daily schedule to be valid, got %v", err)
	}
	if err := ValidateCronSchedule("not a cron"); err == nil {
		t.Error("expected garbage schedule to be rejected")
	}
	if err := ValidateCronSchedule(""); err == nil {
		t.Error("expected empty schedule to be rejected")
	}
}

func TestValidateIntRange(t *testing.T) {
	if err := ValidateIntRange(24, 1, 168); err != nil {
		t.Errorf("expected 24 in [1,168], got %v", err)
	}
	if err := ValidateIntRange(0, 1, 168); err == nil {
		t.Error("expected below-minimum value to be rejected")
	}
	if err := ValidateIntRange(200, 1, 168); err == nil {
		t.Error("expected above-maximum value to be rejected")
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	if err := ValidatePositiveDuration(10 * time.Minute); err != nil {
		t.Errorf("expected positive duration to pass, got %v", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("expected zero duration to be rejected")
	}
	if err := ValidatePositiveDuration(-time.Second); err == nil {
		t.Error("expected negative duration to be rejected")
	}
}
