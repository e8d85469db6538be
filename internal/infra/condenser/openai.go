package condenser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"oryx-daily/internal/resilience/circuitbreaker"
	"oryx-daily/internal/resilience/retry"
)

const openaiMaxTokens = 2048

// OpenAI condenses digests with OpenAI's chat completion API, wrapped in
// circuit breaker and retry logic.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	settings       Settings
	model          string
}

// NewOpenAI creates an OpenAI-backed condenser with the given API key.
func NewOpenAI(apiKey string, settings Settings) *OpenAI {
	slog.Info("initialized openai condenser",
		slog.Int("character_limit", settings.CharacterLimit))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.CondenserConfig()),
		retryConfig:    retry.CondenserConfig(),
		settings:       settings,
		model:          openai.GPT4oMini,
	}
}

// Condense implements Condenser.
func (o *OpenAI) Condense(ctx context.Context, body string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.settings.Timeout)
	defer cancel()

	var result string
	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doCondense(ctx, body)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai condenser circuit breaker open, request rejected",
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("openai condense failed: %w", retryErr)
	}

	return result, nil
}

// doCondense performs one API call without retry or circuit breaker.
func (o *OpenAI) doCondense(ctx context.Context, body string) (string, error) {
	requestID := uuid.New().String()
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(o.settings.CharacterLimit, body),
		}},
		MaxTokens: openaiMaxTokens,
	})
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "digest condense failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices")
	}

	condensed := resp.Choices[0].Message.Content
	slog.InfoContext(ctx, "digest condense completed",
		slog.String("request_id", requestID),
		slog.Int("output_length", utf8.RuneCountInString(condensed)),
		slog.Duration("duration", duration))

	return condensed, nil
}
