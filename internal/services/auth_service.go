package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"buildxpert/internal/auth"
	"buildxpert/internal/dto"
	"buildxpert/internal/email"
	"buildxpert/internal/logger"
	"buildxpert/internal/models"
	"buildxpert/internal/repositories"
	"buildxpert/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// TokenVerifier validates a third-party ID token and returns the
// profile claims the application needs. Satisfied by the Google OIDC
// verifier; stubbed in tests.
type TokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*OAuthProfile, error)
}

type OAuthProfile struct {
	Email string
	Name  string
}

type AuthService struct {
	users    repositories.UserRepository
	verifier TokenVerifier
	sender   *email.Sender
}

func NewAuthService(users repositories.UserRepository, verifier TokenVerifier, sender *email.Sender) *AuthService {
	return &AuthService{users: users, verifier: verifier, sender: sender}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleClient,
		Phone:        req.Phone,
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendWelcome(ctx, user)

	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// LoginWithGoogle verifies a Google ID token and signs the matching
// account in, creating it on first login.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*dto.AuthResponse, error) {
	if s.verifier == nil {
		return nil, apperrors.NewBadRequestError("Google sign-in is not configured")
	}

	profile, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		logger.CtxWarn(ctx, "google id token rejected", "error", err)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(profile.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		// First login: provision a client account without a usable
		// password.
		randomSecret, genErr := randomToken()
		if genErr != nil {
			return nil, apperrors.InternalError(genErr)
		}
		hash, hashErr := auth.HashPassword(randomSecret)
		if hashErr != nil {
			return nil, apperrors.InternalError(hashErr)
		}

		user = &models.User{
			Name:         profile.Name,
			Email:        profile.Email,
			PasswordHash: hash,
			Role:         models.UserRoleClient,
		}
		if createErr := s.users.Create(user); createErr != nil {
			return nil, apperrors.InternalError(createErr)
		}
		s.sendWelcome(ctx, user)
	} else if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.AuthResponse, error) {
	stored, err := s.users.FindRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(stored.Token)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the old refresh token is single-use.
	if err := s.users.DeleteRefreshToken(stored.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.users.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	access, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh, err := randomToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.users.CreateRefreshToken(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user),
	}, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, user *models.User) {
	if s.sender == nil {
		return
	}
	if err := s.sender.SendTemplate(ctx, []string{user.Email}, "welcome",
		map[string]string{"Name": user.Name}); err != nil {
		// Mail failure never blocks registration.
		logger.CtxWarn(ctx, "welcome email failed", "error", err, "email", user.Email)
	}
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
