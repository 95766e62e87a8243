package email

import (
	"context"
	"fmt"

	"buildxpert/internal/logger"
)

// FallbackProvider tries each backend in order until one succeeds.
type FallbackProvider struct {
	providers []Provider
}

func NewFallbackProvider(providers ...Provider) *FallbackProvider {
	return &FallbackProvider{providers: providers}
}

func (p *FallbackProvider) Name() string { return "fallback" }

func (p *FallbackProvider) Send(ctx context.Context, msg Message) error {
	if len(p.providers) == 0 {
		return ErrNoProviders
	}

	var lastErr error
	for _, provider := range p.providers {
		if err := provider.Send(ctx, msg); err != nil {
			logger.Warn("email provider failed, trying next",
				"provider", provider.Name(), "error", err)
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("%w: last error: %v", ErrAllProviders, lastErr)
}
