package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"store_manager/internal/apperrors"
	"store_manager/internal/logger"
	"store_manager/internal/models"
	"store_manager/internal/redis"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionStore tracks refresh tokens that have not been revoked.
type SessionStore interface {
	SaveRefreshSession(ctx context.Context, jti string, session *redis.RefreshSession, ttl time.Duration) error
	GetRefreshSession(ctx context.Context, jti string) (*redis.RefreshSession, error)
	DeleteRefreshSession(ctx context.Context, jti string) error
}

type AuthConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AccessToken, error)
	Revoke(ctx context.Context, refreshToken string) error
	ValidateAccessToken(token string) (*Claims, error)
}

type authService struct {
	users    UserService
	sessions SessionStore
	cfg      AuthConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthService issues HS256 tokens. sessions may be nil, in which case
// refresh tokens are valid until they expire and revocation is a no-op.
func NewAuthService(users UserService, sessions SessionStore, cfg AuthConfig, log *logger.Logger) AuthService {
	return &authService{
		users:    users,
		sessions: sessions,
		cfg:      cfg,
		log:      log.With("service", "auth"),
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.log.Warn("login rejected", "username", username)
		}
		return nil, err
	}

	access, _, err := s.sign(user.ID, user.Username, AccessTokenType, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, refreshClaims, err := s.sign(user.ID, user.Username, RefreshTokenType, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}

	if s.sessions != nil {
		session := &redis.RefreshSession{
			UserID:    user.ID,
			Username:  user.Username,
			IssuedAt:  refreshClaims.IssuedAt.Time,
			ExpiresAt: refreshClaims.ExpiresAt.Time,
		}
		if err := s.sessions.SaveRefreshSession(ctx, refreshClaims.ID, session, s.cfg.RefreshTTL); err != nil {
			return nil, err
		}
	}

	s.log.Info("user logged in", "username", user.Username)
	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.AccessToken, error) {
	claims, err := s.parse(refreshToken, RefreshTokenType)
	if err != nil {
		return nil, err
	}
	if s.sessions != nil {
		session, err := s.sessions.GetRefreshSession(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, apperrors.ErrInvalidToken
		}
	}

	access, _, err := s.sign(claims.UserID, claims.Username, AccessTokenType, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &models.AccessToken{Access: access}, nil
}

func (s *authService) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(refreshToken, RefreshTokenType)
	if err != nil {
		return err
	}
	if s.sessions == nil {
		return nil
	}
	return s.sessions.DeleteRefreshSession(ctx, claims.ID)
}

func (s *authService) ValidateAccessToken(token string) (*Claims, error) {
	return s.parse(token, AccessTokenType)
}

func (s *authService) sign(userID uint, username, tokenType string, ttl time.Duration) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, claims, nil
}

func (s *authService) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
