package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one configuration value from the
// environment. Value holds either the parsed environment value or the
// default; FallbackApplied is true when the default was substituted because
// parsing or validation failed; Warnings carries one message per fallback.
//
// Loaders in this package never return an error. Ambient settings follow a
// fail-open strategy: an operator typo degrades to the default with a
// warning instead of keeping the poster from starting. The poster's core
// configuration (channels, schedule, timezone) deliberately does NOT use
// these helpers - it fails closed in internal/config.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString loads a plain string from the environment, returning the
// default when the variable is unset or empty. No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string from the environment and validates it.
// An unset variable yields the default silently; a set-but-invalid value
// yields the default with a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvInt loads an integer from the environment with parsing and optional
// validation; parse and validation failures fall back to the default.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvDuration loads a Go duration string ("30s", "10m", "1h30m") from the
// environment with parsing and optional validation.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return LoadResult{Value: parsed}
}

// LoadEnvBool loads a boolean from the environment. Accepted values are the
// ones strconv.ParseBool accepts ("true", "1", "false", "0", ...).
func LoadEnvBool(envKey string, defaultValue bool) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	return LoadResult{Value: parsed}
}

func fallbackResult(envKey, raw string, defaultValue interface{}, err error) LoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, defaultValue)
	return LoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}
