package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"oryx-daily/internal/domain/entity"
)

// defaultChannels is the built-in channel→country-group mapping used when
// neither ORYX_CHANNELS_JSON nor ORYX_CHANNELS_FILE is set.
func defaultChannels() []entity.ChannelConfig {
	return []entity.ChannelConfig{
		{
			Name: "news-ame",
			Countries: []string{
				"Benin", "Morocco", "Côte d’Ivoire", "Senegal",
				"Tunisia", "Burkina Faso", "Ghana", "Liberia", "Jordan",
			},
		},
		{
			Name: "news-ctrl-eur",
			Countries: []string{
				"Austria", "Bosnia and Herzegovina", "Czech Republic",
				"Malta", "Serbia", "Slovakia",
			},
		},
	}
}

// loadChannels resolves the channel set, preferring the JSON environment
// variable over the YAML file, falling back to the built-in mapping.
func loadChannels() ([]entity.ChannelConfig, error) {
	if raw := os.Getenv(EnvChannelsJSON); raw != "" {
		channels, err := ParseChannelsJSON(strings.NewReader(raw))
		if err != nil {
			return nil, &ConfigError{Field: EnvChannelsJSON, Err: err}
		}
		return channels, nil
	}

	if path := os.Getenv(EnvChannelsFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ConfigError{Field: EnvChannelsFile, Err: err}
		}
		channels, err := ParseChannelsYAML(data)
		if err != nil {
			return nil, &ConfigError{Field: EnvChannelsFile, Err: err}
		}
		return channels, nil
	}

	return defaultChannels(), nil
}

// ParseChannelsJSON decodes a JSON object of channel name → country list,
// preserving the declaration order of the keys. A plain map would lose the
// order, so the decoder walks the token stream instead.
//
// Rejected shapes: a non-object document, a duplicate channel name, an empty
// channel name, and a value that is not a non-empty array of strings.
func ParseChannelsJSON(r io.Reader) ([]entity.ChannelConfig, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("malformed channel mapping: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("channel mapping must be a JSON object, got %v", tok)
	}

	var channels []entity.ChannelConfig
	seen := make(map[string]bool)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed channel mapping: %w", err)
		}
		name := keyTok.(string)
		if seen[name] {
			return nil, fmt.Errorf("duplicate channel %q", name)
		}
		seen[name] = true

		var countries []string
		if err := dec.Decode(&countries); err != nil {
			return nil, fmt.Errorf("channel %q: countries must be an array of strings: %w", name, err)
		}

		ch := entity.ChannelConfig{Name: name, Countries: countries}
		if err := ch.Validate(); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("malformed channel mapping: %w", err)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("channel mapping is empty")
	}

	return channels, nil
}

// ParseChannelsYAML decodes a YAML mapping of channel name → country list
// with the same validation rules as ParseChannelsJSON. yaml.Node is used
// instead of a map so key order survives.
func ParseChannelsYAML(data []byte) ([]entity.ChannelConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed channel mapping: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("channel mapping is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("channel mapping must be a YAML mapping")
	}

	var channels []entity.ChannelConfig
	seen := make(map[string]bool)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]

		name := keyNode.Value
		if seen[name] {
			return nil, fmt.Errorf("duplicate channel %q", name)
		}
		seen[name] = true

		var countries []string
		if err := valNode.Decode(&countries); err != nil {
			return nil, fmt.Errorf("channel %q: countries must be a list of strings: %w", name, err)
		}

		ch := entity.ChannelConfig{Name: name, Countries: countries}
		if err := ch.Validate(); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}

	if len(channels) == 0 {
		return nil, fmt.Errorf("channel mapping is empty")
	}

	return channels, nil
}
