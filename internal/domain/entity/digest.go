package entity

// DigestSource identifies which generation capability produced a digest body.
type DigestSource string

const (
	// DigestSourcePrimary marks a digest produced by a project-supplied
	// generator (live or curated feeds).
	DigestSourcePrimary DigestSource = "primary"

	// DigestSourceFallback marks a digest produced by the built-in
	// placeholder generator.
	DigestSourceFallback DigestSource = "fallback"
)

// DigestResult is the outcome of a single generation call for one channel.
// The body is opaque Slack mrkdwn; it is created once per channel per run
// and never persisted.
type DigestResult struct {
	Body   string
	Source DigestSource
}

// OutcomeStatus is the terminal state of one channel within a run.
type OutcomeStatus string

const (
	// StatusSent means the formatted message was accepted by the platform.
	StatusSent OutcomeStatus = "sent"

	// StatusFailed means generation, formatting or delivery failed for the
	// channel. The failure never aborts the run for other channels.
	StatusFailed OutcomeStatus = "failed"
)

// RunOutcome records what happened to a single channel during one run.
// Exactly one outcome exists per channel per run, in configuration order.
// Outcomes are reported after the run completes and then discarded.
type RunOutcome struct {
	Channel string
	Status  OutcomeStatus
	Detail  string
}

// Sent reports whether the outcome is a success.
func (o RunOutcome) Sent() bool {
	return o.Status == StatusSent
}
