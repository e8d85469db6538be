// Package config provides reusable environment loading and validation helpers
// shared by the poster configuration and the worker ambient settings.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateClockTime validates a wall-clock time string in HH:MM form
// (24-hour, hour 0-23, minute 0-59). Leading zeros are accepted but not
// required, matching what operators typically write ("8:30" and "08:30"
// are both valid).
func ValidateClockTime(value string) error {
	_, _, err := ParseClockTime(value)
	return err
}

// ParseClockTime parses an HH:MM string into its hour and minute components.
// Returns a descriptive error when the string does not denote a valid
// 24-hour wall-clock time.
func ParseClockTime(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time '%s': expected HH:MM", value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time '%s': hour is not a number", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time '%s': minute is not a number", value)
	}

	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock time '%s': hour %d out of range 0-23", value, hour)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time '%s': minute %d out of range 0-59", value, minute)
	}

	return hour, minute, nil
}

// ValidateTimezone validates an IANA timezone name by attempting to load it
// with time.LoadLocation. Validation can fail for valid names when the host
// lacks timezone data (e.g. a container image without tzdata).
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}

	_, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

// ValidateCronSchedule validates a 5-field cron expression using the
// robfig/cron/v3 parser, the same parser that later schedules the job.
// Example: "30 8 * * *" fires every day at 08:30.
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	return nil
}

// ValidateIntRange validates that an integer lies within [min, max] inclusive.
func ValidateIntRange(value, min, max int) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%d) cannot be greater than max (%d)", min, max)
	}
	if value < min {
		return fmt.Errorf("value %d is below minimum %d", value, min)
	}
	if value > max {
		return fmt.Errorf("value %d exceeds maximum %d", value, max)
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
// Zero and negative durations are rejected; they usually indicate a typo
// rather than an intent to disable a timeout.
func ValidatePositiveDuration(duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", duration)
	}
	return nil
}
