package email

import (
	"context"
	"fmt"

	"buildxpert/internal/config"
)

// Provider sends a single email through one backend.
type Provider interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// NewProvider builds the provider named in the config. Known backends:
// "smtp", "ses", "sesv2".
func NewProvider(backend string, cfg config.EmailConfig) (Provider, error) {
	switch backend {
	case "smtp":
		return NewSMTPProvider(cfg), nil
	case "ses":
		return NewSESProvider(cfg)
	case "sesv2":
		return NewSESV2Provider(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// NewProviderChain builds every provider listed in cfg.Providers, in
// order. The first entry is primary, the rest are fallbacks.
func NewProviderChain(cfg config.EmailConfig) (Provider, error) {
	if len(cfg.Providers) == 0 {
		return nil, ErrNoProviders
	}

	providers := make([]Provider, 0, len(cfg.Providers))
	for _, backend := range cfg.Providers {
		p, err := NewProvider(backend, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	if len(providers) == 1 {
		return providers[0], nil
	}
	return NewFallbackProvider(providers...), nil
}
