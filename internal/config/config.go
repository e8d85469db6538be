// Package config resolves the poster's configuration from the environment.
//
// Unlike the ambient worker settings (ports, timeouts), the core posting
// configuration fails closed: a malformed channel mapping, posting time or
// timezone yields a ConfigError and the process must not proceed to
// scheduling or delivery.
package config

import (
	"fmt"
	"os"
	"time"

	"oryx-daily/internal/domain/entity"
	pkgconfig "oryx-daily/internal/pkg/config"
)

// Environment variable names for the core posting configuration.
const (
	EnvBotToken     = "SLACK_BOT_TOKEN"
	EnvChannelsJSON = "ORYX_CHANNELS_JSON"
	EnvChannelsFile = "ORYX_CHANNELS_FILE"
	EnvPostAt       = "POST_AT_LOCAL_TIME"
	EnvLocalTZ      = "LOCAL_TZ"
	EnvPostCron     = "POST_CRON"
	EnvDigestSource = "DIGEST_SOURCE"
	EnvWindowHours  = "DIGEST_WINDOW_HOURS"
	EnvVerifiedOnly = "DIGEST_VERIFIED_ONLY"
)

// Defaults applied when the optional scheduling variables are absent.
const (
	DefaultPostAt   = "08:30"
	DefaultTimezone = "Africa/Casablanca"
)

// ConfigError is a fatal startup configuration error. It carries the field
// that failed so the diagnostic names what the operator must fix.
type ConfigError struct {
	Field string
	Err   error
}

// Error returns the formatted configuration error message.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Schedule holds the resolved posting schedule: a local wall-clock time in an
// IANA zone, plus an optional cron expression that overrides the daily loop.
type Schedule struct {
	Hour     int
	Minute   int
	Timezone string
	Location *time.Location

	// CronSpec, when non-empty, switches the daemon to cron-driven
	// scheduling in Location instead of the daily HH:MM loop.
	CronSpec string
}

// String renders the schedule for logs.
func (s Schedule) String() string {
	if s.CronSpec != "" {
		return fmt.Sprintf("cron %q %s", s.CronSpec, s.Timezone)
	}
	return fmt.Sprintf("%02d:%02d %s", s.Hour, s.Minute, s.Timezone)
}

// DigestSettings selects and parameterizes the digest generator.
type DigestSettings struct {
	// Source seeds the generator resolution order: "gnews", "curated" or
	// "placeholder". Resolution still falls through to the placeholder when
	// a preferred generator cannot be constructed.
	Source string

	// WindowHours is the lookback window passed to the generator.
	WindowHours int

	// VerifiedOnly restricts digest items to verified (government,
	// parliament) sources when the generator supports the distinction.
	VerifiedOnly bool
}

// Config is the immutable process-wide posting configuration. It is resolved
// once at startup; a restart is required to pick up changes.
type Config struct {
	BotToken string
	Channels []entity.ChannelConfig
	Schedule Schedule
	Digest   DigestSettings
}

// Load resolves the full posting configuration from the environment.
// Any invalid core value returns a *ConfigError; nothing is partially applied.
func Load() (*Config, error) {
	token := os.Getenv(EnvBotToken)
	if token == "" {
		return nil, &ConfigError{Field: EnvBotToken, Err: fmt.Errorf("missing required credential")}
	}

	channels, err := loadChannels()
	if err != nil {
		return nil, err
	}

	schedule, err := loadSchedule()
	if err != nil {
		return nil, err
	}

	digest, err := loadDigestSettings()
	if err != nil {
		return nil, err
	}

	return &Config{
		BotToken: token,
		Channels: channels,
		Schedule: schedule,
		Digest:   digest,
	}, nil
}

func loadSchedule() (Schedule, error) {
	postAt := pkgconfig.LoadEnvString(EnvPostAt, DefaultPostAt)
	hour, minute, err := pkgconfig.ParseClockTime(postAt)
	if err != nil {
		return Schedule{}, &ConfigError{Field: EnvPostAt, Err: err}
	}

	tz := pkgconfig.LoadEnvString(EnvLocalTZ, DefaultTimezone)
	if err := pkgconfig.ValidateTimezone(tz); err != nil {
		return Schedule{}, &ConfigError{Field: EnvLocalTZ, Err: err}
	}
	loc, _ := time.LoadLocation(tz) // cannot fail, ValidateTimezone just loaded it

	cronSpec := os.Getenv(EnvPostCron)
	if cronSpec != "" {
		if err := pkgconfig.ValidateCronSchedule(cronSpec); err != nil {
			return Schedule{}, &ConfigError{Field: EnvPostCron, Err: err}
		}
	}

	return Schedule{
		Hour:     hour,
		Minute:   minute,
		Timezone: tz,
		Location: loc,
		CronSpec: cronSpec,
	}, nil
}

func loadDigestSettings() (DigestSettings, error) {
	source := pkgconfig.LoadEnvString(EnvDigestSource, "gnews")
	switch source {
	case "gnews", "curated", "placeholder":
	default:
		return DigestSettings{}, &ConfigError{
			Field: EnvDigestSource,
			Err:   fmt.Errorf("unknown digest source %q (expected gnews, curated or placeholder)", source),
		}
	}

	hoursResult := pkgconfig.LoadEnvInt(EnvWindowHours, 24, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 168)
	})
	verifiedResult := pkgconfig.LoadEnvBool(EnvVerifiedOnly, true)

	return DigestSettings{
		Source:       source,
		WindowHours:  hoursResult.Value.(int),
		VerifiedOnly: verifiedResult.Value.(bool),
	}, nil
}
