package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name  string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Send(ctx context.Context, msg Message) error {
	p.calls++
	return p.err
}

func TestFallback_FirstProviderWins(t *testing.T) {
	primary := &stubProvider{name: "smtp"}
	backup := &stubProvider{name: "ses"}
	chain := NewFallbackProvider(primary, backup)

	err := chain.Send(context.Background(), Message{To: []string{"a@b.c"}})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, backup.calls)
}

func TestFallback_AdvancesOnFailure(t *testing.T) {
	primary := &stubProvider{name: "smtp", err: errors.New("connection refused")}
	backup := &stubProvider{name: "ses"}
	chain := NewFallbackProvider(primary, backup)

	err := chain.Send(context.Background(), Message{To: []string{"a@b.c"}})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, backup.calls)
}

func TestFallback_AllFail(t *testing.T) {
	primary := &stubProvider{name: "smtp", err: errors.New("down")}
	backup := &stubProvider{name: "ses", err: errors.New("also down")}
	chain := NewFallbackProvider(primary, backup)

	err := chain.Send(context.Background(), Message{To: []string{"a@b.c"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllProviders)
}

func TestFallback_Empty(t *testing.T) {
	chain := NewFallbackProvider()
	err := chain.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNoProviders)
}
