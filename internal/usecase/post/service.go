// Package post orchestrates one digest run: generating, condensing,
// formatting, and delivering a digest to every configured channel.
//
// Failure isolation is the load-bearing property here. A run visits every
// channel in configuration order and produces exactly one outcome per
// channel; a generation or delivery failure marks that channel failed and
// the run moves on.
package post

import (
	"context"
	"log/slog"
	"time"

	"oryx-daily/internal/domain/entity"
	"oryx-daily/internal/infra/condenser"
	"oryx-daily/internal/usecase/digest"
)

// Deliverer posts one formatted message to a named channel.
type Deliverer interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// Service runs digest posting across the configured channels.
type Service struct {
	binding   digest.Binding
	condenser condenser.Condenser
	deliverer Deliverer
	opts      digest.Options
}

// NewService creates the posting service. The generator binding is fixed
// for the life of the service; daemon runs reuse the same binding across
// days.
func NewService(binding digest.Binding, cond condenser.Condenser, deliverer Deliverer, opts digest.Options) *Service {
	return &Service{
		binding:   binding,
		condenser: cond,
		deliverer: deliverer,
		opts:      opts,
	}
}

// RunAll posts the digest to every channel in configuration order and
// returns one outcome per channel, in the same order. It never returns an
// error: per-channel failures are recorded in the outcomes, and the caller
// maps them to an exit code or metrics.
func (s *Service) RunAll(ctx context.Context, date time.Time, channels []entity.ChannelConfig) []entity.RunOutcome {
	start := time.Now()

	slog.Info("digest run started",
		slog.String("date", date.Format("2006-01-02")),
		slog.String("generator", s.binding.Name),
		slog.Int("channels", len(channels)))

	outcomes := make([]entity.RunOutcome, 0, len(channels))
	for _, ch := range channels {
		outcomes = append(outcomes, s.runChannel(ctx, date, ch))
	}

	sent := 0
	for _, o := range outcomes {
		if o.Sent() {
			sent++
		}
	}

	result := "failed"
	switch {
	case sent == len(channels):
		result = "success"
		lastSuccessTimestamp.SetToCurrentTime()
	case sent > 0:
		result = "partial"
	}
	digestRunsTotal.WithLabelValues(result).Inc()
	runDuration.Observe(time.Since(start).Seconds())

	slog.Info("digest run finished",
		slog.String("result", result),
		slog.Int("sent", sent),
		slog.Int("failed", len(channels)-sent),
		slog.Duration("duration", time.Since(start)))

	return outcomes
}

// runChannel produces the outcome for a single channel. Every exit path
// records exactly one outcome and one metrics increment.
func (s *Service) runChannel(ctx context.Context, date time.Time, ch entity.ChannelConfig) entity.RunOutcome {
	if err := ctx.Err(); err != nil {
		return s.failed(ch, &DeliveryError{Channel: ch.Name, Err: err})
	}

	result, err := s.binding.Digest(ctx, ch.Countries, s.opts)
	if err != nil {
		return s.failed(ch, &GenerationError{Channel: ch.Name, Err: err})
	}

	body := result.Body
	if condensed, err := s.condenser.Condense(ctx, body); err != nil {
		// Condensing is best-effort: deliver the raw digest instead.
		slog.Warn("condense failed, posting raw digest",
			slog.String("channel", ch.Name),
			slog.Any("error", err))
	} else {
		body = condensed
	}

	message := FormatMessage(date, ch, body)
	if err := s.deliverer.PostMessage(ctx, ch.Name, message); err != nil {
		return s.failed(ch, &DeliveryError{Channel: ch.Name, Err: err})
	}

	channelPostsTotal.WithLabelValues(ch.Name, string(entity.StatusSent)).Inc()
	slog.Info("channel digest sent",
		slog.String("channel", ch.Name),
		slog.String("digest_source", string(result.Source)),
		slog.Int("message_length", len(message)))

	return entity.RunOutcome{
		Channel: ch.Name,
		Status:  entity.StatusSent,
		Detail:  string(result.Source),
	}
}

// failed records a failed outcome with its metric and log line.
func (s *Service) failed(ch entity.ChannelConfig, cause error) entity.RunOutcome {
	channelPostsTotal.WithLabelValues(ch.Name, string(entity.StatusFailed)).Inc()
	slog.Error("channel digest failed",
		slog.String("channel", ch.Name),
		slog.Any("error", cause))

	return entity.RunOutcome{
		Channel: ch.Name,
		Status:  entity.StatusFailed,
		Detail:  cause.Error(),
	}
}
