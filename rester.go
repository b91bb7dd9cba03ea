// Package rester exposes the client builders.
package rester

import (
	"fmt"

	"github.com/adamwoolhether/rester/client"
	"github.com/adamwoolhether/rester/config"
)

// NewClient instantiates a new *Client with the provided options.
// If not specified, the XML, JSON and form media types are registered and
// requests go out through the default dispatcher.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// FromConfig instantiates a new *Client from cfg. Options in opts are
// applied after the ones derived from cfg, so they take precedence.
func FromConfig(cfg config.Config, opts ...client.Option) (*client.Client, error) {
	cfgOpts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("translating config: %w", err)
	}

	return client.Build(append(cfgOpts, opts...)...)
}
