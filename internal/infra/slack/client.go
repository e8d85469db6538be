// Package slack implements digest delivery over the Slack Web API.
//
// Delivery is deliberately a single attempt per message: the daily poster
// runs once per day, and a retried duplicate digest is worse than a missed
// one. Failures surface to the caller, which records the channel outcome.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// defaultAPIURL is the Slack Web API endpoint for posting messages.
const defaultAPIURL = "https://slack.com/api/chat.postMessage"

// defaultTimeout bounds one chat.postMessage round trip.
const defaultTimeout = 10 * time.Second

// Config contains configuration for the Slack Web API client.
type Config struct {
	// BotToken is the xoxb- bot token used as a Bearer credential.
	BotToken string

	// APIURL overrides the chat.postMessage endpoint. Empty means the real
	// Slack API; tests point this at a local server.
	APIURL string

	// Timeout is the HTTP request timeout for Slack API calls.
	Timeout time.Duration
}

// Client posts digest messages to Slack channels via chat.postMessage.
// It is safe for concurrent use; a shared rate limiter keeps posts at
// Slack's 1 message/second limit.
type Client struct {
	config      Config
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a Slack Web API client.
func NewClient(config Config) *Client {
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		// One limiter for the whole client: 1 msg/s overall, which stays
		// inside Slack's per-channel chat.postMessage limit.
		rateLimiter: rate.NewLimiter(1, 1),
	}
}

// postMessageRequest is the chat.postMessage JSON body.
type postMessageRequest struct {
	Channel     string `json:"channel"`
	Text        string `json:"text"`
	Mrkdwn      bool   `json:"mrkdwn"`
	UnfurlLinks bool   `json:"unfurl_links"`
}

// apiResponse is the envelope Slack wraps every Web API response in.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// APIError is a failure reported by the Slack platform, either as a non-2xx
// status or an ok:false envelope.
type APIError struct {
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("slack API HTTP %d: %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("slack API error: %s", e.Reason)
}

// PostMessage posts text to the named channel as mrkdwn. It makes exactly
// one attempt; any failure is returned to the caller.
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	requestID := uuid.New().String()

	body, err := json.Marshal(postMessageRequest{
		Channel:     channelRef(channel),
		Text:        text,
		Mrkdwn:      true,
		UnfurlLinks: false,
	})
	if err != nil {
		return fmt.Errorf("marshal post message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.config.BotToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.rejected(requestID, channel, &APIError{
			StatusCode: resp.StatusCode,
			Reason:     strings.TrimSpace(string(respBody)),
		})
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}
	if !envelope.OK {
		return c.rejected(requestID, channel, &APIError{Reason: envelope.Error})
	}

	slog.Info("slack message posted",
		slog.String("request_id", requestID),
		slog.String("channel", channel),
		slog.Int("text_length", len(text)))
	return nil
}

// rejected logs a platform rejection under the same request ID as the
// success path, so one post can be correlated either way, and returns the
// error unchanged.
func (c *Client) rejected(requestID, channel string, apiErr *APIError) error {
	slog.Warn("slack message rejected",
		slog.String("request_id", requestID),
		slog.String("channel", channel),
		slog.Any("error", apiErr))
	return apiErr
}

// channelRef converts a bare channel name into the #name reference
// chat.postMessage expects, leaving already-qualified references alone.
func channelRef(channel string) string {
	if strings.HasPrefix(channel, "#") {
		return channel
	}
	return "#" + channel
}
