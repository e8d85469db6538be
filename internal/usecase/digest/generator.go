// Package digest provides the digest-generation contract and the startup
// resolver that binds one concrete generator for the process lifetime.
package digest

import (
	"context"
	"fmt"

	"oryx-daily/internal/domain/entity"
)

// Options parameterizes a generation call. The zero value is not useful;
// use DefaultOptions and override as needed.
type Options struct {
	// Hours is the lookback window for digest items.
	Hours int

	// VerifiedOnly restricts items to verified (government, parliament)
	// sources when the generator supports the distinction.
	VerifiedOnly bool
}

// DefaultOptions returns the standard generation parameters: a 24 hour
// window, verified sources only.
func DefaultOptions() Options {
	return Options{Hours: 24, VerifiedOnly: true}
}

// Generator produces a Slack mrkdwn digest body for a list of countries.
// Implementations must respect context cancellation; they may be arbitrarily
// slow or fail, and the caller is responsible for isolating such failures
// per channel.
type Generator interface {
	Generate(ctx context.Context, countries []string, opts Options) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, countries []string, opts Options) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, countries []string, opts Options) (string, error) {
	return f(ctx, countries, opts)
}

// Binding is the resolved digest-generation capability. It is created once
// at startup and never rebound: a generation failure during a run is that
// channel's failure, not a reason to fall back to another generator.
type Binding struct {
	Name      string
	Source    entity.DigestSource
	generator Generator
}

// NewBinding wraps a generator with its identity for logging and outcome
// attribution.
func NewBinding(name string, source entity.DigestSource, g Generator) Binding {
	return Binding{Name: name, Source: source, generator: g}
}

// Digest runs one generation call and packages the result. A panic inside
// the bound generator is recovered and surfaced as an ordinary error so one
// misbehaving channel cannot take down the run.
func (b Binding) Digest(ctx context.Context, countries []string, opts Options) (result entity.DigestResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator %s panicked: %v", b.Name, r)
		}
	}()

	body, err := b.generator.Generate(ctx, countries, opts)
	if err != nil {
		return entity.DigestResult{}, fmt.Errorf("generator %s: %w", b.Name, err)
	}

	return entity.DigestResult{Body: body, Source: b.Source}, nil
}
