package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codebliss/internal/apperror"
	"codebliss/internal/models"
	"codebliss/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	MsgSignInRequired = "You need to be signed in to access this resource. Please sign in or sign up."
	MsgSessionInvalid = "Your sign in session isn't valid. Please sign in again to continue."
	MsgSessionExpired = "Your sign in session has expired. Please sign in again."

	revokedKeyPrefix = "revoked_token:"
)

// Claims is the signed session payload: the public profile plus expiry.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenService issues and verifies session tokens. With a redis client it
// also keeps a revocation list so signed-out tokens stop working before
// they expire; without one, sessions are purely stateless.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	rdb    *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, rdb *redis.Client, logger *slog.Logger) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens; the cookie max-age follows it.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.NewID(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:   user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and revocation. Every failure is an
// Unauthorized apperror.
func (s *TokenService) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.Unauthorized(MsgSignInRequired)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Unauthorized(MsgSessionExpired)
		}
		return nil, apperror.Unauthorized(MsgSessionInvalid)
	}
	if claims.UserID == "" {
		return nil, apperror.Unauthorized(MsgSessionInvalid)
	}

	if s.isRevoked(ctx, claims.ID) {
		return nil, apperror.Unauthorized(MsgSessionInvalid)
	}
	return claims, nil
}

// Revoke lists the token until its natural expiry. It is a no-op without redis.
func (s *TokenService) Revoke(ctx context.Context, claims *Claims) error {
	if s.rdb == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKeyPrefix+claims.ID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *TokenService) isRevoked(ctx context.Context, jti string) bool {
	if s.rdb == nil || jti == "" {
		return false
	}
	n, err := s.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		// redis outage degrades to stateless sessions
		s.logger.Warn("Token revocation lookup failed", "error", err)
		return false
	}
	return n > 0
}
