package post

import "fmt"

// GenerationError indicates that digest generation failed for one channel.
// It never aborts the run; the channel is recorded as failed and the
// remaining channels proceed.
type GenerationError struct {
	Channel string
	Err     error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate digest for channel %s: %v", e.Channel, e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// DeliveryError indicates that posting to one channel failed. Like
// generation failures it is isolated to the channel.
type DeliveryError struct {
	Channel string
	Err     error
}

// Error implements the error interface.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver digest to channel %s: %v", e.Channel, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
