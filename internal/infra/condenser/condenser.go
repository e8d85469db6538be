// Package condenser provides AI-assisted tightening of digest bodies before
// delivery. Condensing is optional and best-effort: the poster falls back to
// the raw digest when the condenser is disabled, misconfigured, or failing.
package condenser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgconfig "oryx-daily/internal/pkg/config"
)

// Condenser rewrites a digest body into a tighter version that preserves
// the mrkdwn structure and every link.
type Condenser interface {
	Condense(ctx context.Context, body string) (string, error)
}

const (
	defaultCharLimit = 2800
	minCharLimit     = 200
	maxCharLimit     = 12000
	defaultTimeout   = 60 * time.Second
)

// Settings holds the shared condenser configuration loaded from the
// environment. These are ambient knobs, so loading is fail-open.
type Settings struct {
	// Enabled turns condensing on. Default off: the digest generators
	// already cap their output, so condensing is an opt-in refinement.
	Enabled bool

	// Type selects the backend: "claude" or "openai".
	Type string

	// CharacterLimit is the target maximum length of a condensed body.
	CharacterLimit int

	// Timeout bounds one condenser API call.
	Timeout time.Duration
}

// LoadSettings loads condenser settings from the environment.
//
// Environment variables:
//   - CONDENSER_ENABLED: enable condensing (default: false)
//   - CONDENSER_TYPE: "claude" or "openai" (default: claude)
//   - CONDENSER_CHAR_LIMIT: target length (default: 2800, range: 200-12000)
//   - CONDENSER_TIMEOUT: per-call timeout, e.g. "60s" (default: 60 seconds)
func LoadSettings() Settings {
	enabled := pkgconfig.LoadEnvBool("CONDENSER_ENABLED", false)
	backendType := pkgconfig.LoadEnvWithFallback("CONDENSER_TYPE", "claude", validateBackendType)
	charLimit := pkgconfig.LoadEnvInt("CONDENSER_CHAR_LIMIT", defaultCharLimit, func(v int) error {
		return pkgconfig.ValidateIntRange(v, minCharLimit, maxCharLimit)
	})
	timeout := pkgconfig.LoadEnvDuration("CONDENSER_TIMEOUT", defaultTimeout, pkgconfig.ValidatePositiveDuration)

	warnings := append(enabled.Warnings, backendType.Warnings...)
	warnings = append(warnings, charLimit.Warnings...)
	warnings = append(warnings, timeout.Warnings...)
	for _, w := range warnings {
		slog.Warn(w)
	}

	return Settings{
		Enabled:        enabled.Value.(bool),
		Type:           backendType.Value.(string),
		CharacterLimit: charLimit.Value.(int),
		Timeout:        timeout.Value.(time.Duration),
	}
}

// validateBackendType rejects condenser backends this package does not ship.
func validateBackendType(value string) error {
	switch value {
	case "claude", "openai":
		return nil
	default:
		return fmt.Errorf("unknown condenser type %q, expected claude or openai", value)
	}
}

// FromEnv builds the condenser selected by the environment. A disabled or
// unusable configuration yields the no-op condenser with a log line rather
// than an error; condensing is never allowed to block posting.
func FromEnv(settings Settings) Condenser {
	if !settings.Enabled {
		return NewNoOp()
	}

	switch settings.Type {
	case "claude":
		apiKey := pkgconfig.LoadEnvString("ANTHROPIC_API_KEY", "")
		if apiKey == "" {
			slog.Warn("condenser enabled but ANTHROPIC_API_KEY is not set, condensing disabled")
			return NewNoOp()
		}
		return NewClaude(apiKey, settings)
	case "openai":
		apiKey := pkgconfig.LoadEnvString("OPENAI_API_KEY", "")
		if apiKey == "" {
			slog.Warn("condenser enabled but OPENAI_API_KEY is not set, condensing disabled")
			return NewNoOp()
		}
		return NewOpenAI(apiKey, settings)
	default:
		slog.Warn("unknown condenser type, condensing disabled",
			slog.String("type", settings.Type))
		return NewNoOp()
	}
}

// buildPrompt is shared by both backends so a backend swap does not change
// condensing behavior.
func buildPrompt(charLimit int, body string) string {
	return fmt.Sprintf("Rewrite the following daily news digest so it fits in at most "+
		"%d characters. Keep the Slack mrkdwn formatting: the header line, "+
		"the *bold* country headings, the bullet lines, and every <url|label> link exactly "+
		"as written. Shorten item titles and drop the least newsworthy items if needed. "+
		"Output only the digest.\n\n%s", charLimit, body)
}
