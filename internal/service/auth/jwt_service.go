// Package auth issues and validates the HS256 bearer tokens that identify the
// user calling the generation API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/config"
	"github.com/phrazzld/scry-cardgen/internal/platform/logger"
)

const accessTokenType = "access"

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the signature and time claims of tokenString and
	// returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	UserID    uuid.UUID
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

type jwtCustomClaims struct {
	UserID    string `json:"uid,omitempty"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time
	clockSkew     time.Duration
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a JWTService signing with HMAC-SHA256.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}
	return newHMACJWTService(cfg.JWTSecret, time.Duration(cfg.TokenLifetimeMinutes)*time.Minute, time.Now), nil
}

func newHMACJWTService(secret string, lifetime time.Duration, now func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     2 * time.Minute,
	}
}

// GenerateToken implements JWTService.
func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID.String(),
		TokenType: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "failed to sign JWT access token",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// ValidateToken implements JWTService.
//
// The user id is read from the uid claim, falling back to sub, so tokens
// minted by an external identity provider sharing the secret are accepted.
// Tokens without a type claim are treated as access tokens.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.DebugContext(ctx, "token validation failed: expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.DebugContext(ctx, "token validation failed: not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.DebugContext(ctx, "token validation failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "" && claims.TokenType != accessTokenType {
		log.DebugContext(ctx, "token validation failed: wrong token type",
			slog.String("actual", claims.TokenType))
		return nil, ErrWrongTokenType
	}

	rawID := claims.UserID
	if rawID == "" {
		rawID = claims.Subject
	}
	userID, err := uuid.Parse(rawID)
	if err != nil || userID == uuid.Nil {
		return nil, ErrMissingUserID
	}

	result := &Claims{
		UserID:    userID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
