// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as ChannelConfig, DigestResult and
// RunOutcome, along with their validation rules and domain-specific errors.
package entity

import "fmt"

// ChannelConfig represents one posting destination and the country group
// whose digest it receives. Channel names are unique within a resolved
// configuration; order is the declaration order of the configuration source.
type ChannelConfig struct {
	Name      string
	Countries []string
}

// Validate validates the ChannelConfig fields.
// A channel must have a non-empty name and at least one non-empty country.
func (c *ChannelConfig) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Message: "channel name cannot be empty"}
	}
	if len(c.Countries) == 0 {
		return &ValidationError{Field: "countries", Message: fmt.Sprintf("channel %q has no countries", c.Name)}
	}
	for i, country := range c.Countries {
		if country == "" {
			return &ValidationError{Field: "countries", Message: fmt.Sprintf("channel %q has an empty country at index %d", c.Name, i)}
		}
	}
	return nil
}
