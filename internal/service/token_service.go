package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/vidtube-server/internal/logger"
	"github.com/dtroode/vidtube-server/internal/model"
)

// TokenService issues, verifies, rotates and revokes tokens.
// It composes the TokenManager with the refresh digest kept on the user.
type TokenService struct {
	manager       model.TokenManager
	users         model.UserStore
	verifyTimeout time.Duration
	logger        *logger.Logger
}

func NewTokenService(manager model.TokenManager, users model.UserStore, verifyTimeout time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:       manager,
		users:         users,
		verifyTimeout: verifyTimeout,
		logger:        logger,
	}
}

// Rotate issues a new token pair for the user and persists the refresh digest,
// replacing whatever was stored before.
func (s *TokenService) Rotate(ctx context.Context, userID uuid.UUID) (model.User, model.TokenPair, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	pair, err := s.issue(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	if err := s.users.SetRefreshTokenHash(ctx, user.ID, hashRefresh(pair.RefreshToken)); err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return user, pair, nil
}

// VerifyAccess validates an access token and returns its identity.
func (s *TokenService) VerifyAccess(token string) (model.Identity, error) {
	identity, err := s.manager.ParseAccessToken(token)
	if err != nil {
		return model.Identity{}, err
	}
	return identity, nil
}

// Authenticate validates an access token and resolves the user it names.
// An unknown user is reported as an invalid token.
func (s *TokenService) Authenticate(ctx context.Context, token string) (model.User, error) {
	identity, err := s.VerifyAccess(token)
	if err != nil {
		return model.User{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return model.User{}, subjectError(err)
	}

	return user, nil
}

// VerifyRefresh validates a refresh token against the digest stored on its user.
func (s *TokenService) VerifyRefresh(ctx context.Context, token string) (model.User, error) {
	userID, err := s.manager.ParseRefreshToken(token)
	if err != nil {
		return model.User{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, subjectError(err)
	}

	if !equalBytes(user.RefreshTokenHash, hashRefresh(token)) {
		return model.User{}, fmt.Errorf("refresh token is not current: %w", model.ErrInvalidToken)
	}

	return user, nil
}

// Refresh verifies the presented refresh token and rotates it. The stored digest
// is swapped only if it still matches the presented token.
func (s *TokenService) Refresh(ctx context.Context, token string) (model.User, model.TokenPair, error) {
	user, err := s.VerifyRefresh(ctx, token)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	pair, err := s.issue(user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	err = s.users.SwapRefreshTokenHash(ctx, user.ID, hashRefresh(token), hashRefresh(pair.RefreshToken))
	if errors.Is(err, model.ErrInvalidToken) {
		s.logger.Warn("Token service: refresh token was rotated concurrently",
			"user_id", user.ID.String())
		return model.User{}, model.TokenPair{}, err
	}
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return user, pair, nil
}

// Revoke clears the stored refresh digest so no refresh token is valid for the user.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetRefreshTokenHash(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *TokenService) issue(user model.User) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(user.Identity())
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// subjectError reports a missing subject or an expired verification lookup
// as an invalid token.
func subjectError(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("token subject does not exist: %w", model.ErrInvalidToken)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("token verification timed out: %w", errors.Join(model.ErrInvalidToken, err))
	default:
		return fmt.Errorf("failed to get user: %w", err)
	}
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func equalBytes(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
