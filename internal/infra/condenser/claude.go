package condenser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"oryx-daily/internal/resilience/circuitbreaker"
	"oryx-daily/internal/resilience/retry"
)

const claudeMaxTokens = 2048

// Claude condenses digests with Anthropic's Claude API, wrapped in circuit
// breaker and retry logic.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	settings       Settings
	model          string
}

// NewClaude creates a Claude-backed condenser with the given API key.
func NewClaude(apiKey string, settings Settings) *Claude {
	slog.Info("initialized claude condenser",
		slog.Int("character_limit", settings.CharacterLimit))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.CondenserConfig()),
		retryConfig:    retry.CondenserConfig(),
		settings:       settings,
		model:          "claude-sonnet-4-5-20250929",
	}
}

// Condense implements Condenser.
func (c *Claude) Condense(ctx context.Context, body string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.Timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doCondense(ctx, body)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude condenser circuit breaker open, request rejected",
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("claude condense failed: %w", retryErr)
	}

	return result, nil
}

// doCondense performs one API call without retry or circuit breaker.
func (c *Claude) doCondense(ctx context.Context, body string) (string, error) {
	requestID := uuid.New().String()
	start := time.Now()

	slog.InfoContext(ctx, "starting digest condense",
		slog.String("request_id", requestID),
		slog.Int("input_length", utf8.RuneCountInString(body)),
		slog.Int("character_limit", c.settings.CharacterLimit))

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(c.settings.CharacterLimit, body)),
			),
		},
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "digest condense failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	condensed := textBlock.Text
	slog.InfoContext(ctx, "digest condense completed",
		slog.String("request_id", requestID),
		slog.Int("output_length", utf8.RuneCountInString(condensed)),
		slog.Duration("duration", duration))

	return condensed, nil
}
