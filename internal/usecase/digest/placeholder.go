package digest

import (
	"context"
	"fmt"
	"strings"
)

// Placeholder is the built-in fallback generator. It deterministically
// produces a non-empty mrkdwn body listing every supplied country, clearly
// marked as placeholder content so a misconfigured deployment is visible in
// the channel rather than silent.
type Placeholder struct{}

// NewPlaceholder returns the built-in fallback generator.
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Generate implements Generator. It never fails and ignores the context.
func (p *Placeholder) Generate(_ context.Context, countries []string, opts Options) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Country updates (past %dh)\n\n", opts.Hours)

	blocks := make([]string, 0, len(countries))
	for _, c := range countries {
		blocks = append(blocks, fmt.Sprintf(
			"*%s*\n• (placeholder) Verified governance item A — source\n• (placeholder) Verified governance item B — source\n", c))
	}
	b.WriteString(strings.Join(blocks, "\n"))

	return b.String(), nil
}
