package services

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"buildxpert/internal/config"
)

// GoogleVerifier validates Google-issued ID tokens via OIDC discovery.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, cfg config.OAuthConfig) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.GoogleClientID}),
	}, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*OAuthProfile, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	if !claims.EmailVerified {
		return nil, fmt.Errorf("google account email is not verified")
	}

	return &OAuthProfile{Email: claims.Email, Name: claims.Name}, nil
}
