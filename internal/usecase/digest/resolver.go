package digest

import (
	"log/slog"

	"oryx-daily/internal/domain/entity"
)

// Candidate is one entry in the generator resolution order: a named
// constructor that may fail when its generator cannot be built (missing
// configuration, disabled source).
type Candidate struct {
	Name   string
	Source entity.DigestSource
	New    func() (Generator, error)
}

// Resolve binds the first constructible candidate, falling back to the
// built-in placeholder when every candidate fails or none is supplied.
// Resolution happens exactly once at process start; the returned Binding is
// immutable for the process lifetime.
func Resolve(logger *slog.Logger, candidates []Candidate) Binding {
	for _, c := range candidates {
		g, err := c.New()
		if err != nil {
			logger.Warn("digest generator unavailable, trying next",
				slog.String("generator", c.Name),
				slog.Any("error", err))
			continue
		}
		logger.Info("digest generator bound", slog.String("generator", c.Name))
		return NewBinding(c.Name, c.Source, g)
	}

	logger.Warn("no digest generator available, using placeholder")
	return NewBinding("placeholder", entity.DigestSourceFallback, NewPlaceholder())
}
