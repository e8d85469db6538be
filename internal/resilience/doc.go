// Package resilience provides reliability patterns for the poster's outbound
// calls. Feed fetching and the optional AI condenser go through retry with
// exponential backoff and a gobreaker circuit breaker; Slack delivery
// deliberately does not (one attempt per channel per run).
package resilience
