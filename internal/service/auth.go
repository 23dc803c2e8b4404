package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

var ErrNoSecretKey = errors.New("jwt secret key is not configured")

// AuthService issues and resolves identity tokens.
type AuthService interface {
	GenerateToken(username string) (string, error)
	ResolveIdentity(token string) (string, error)
}

type authServiceImpl struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

func NewAuthService(secretKey string, ttl time.Duration, now func() time.Time) AuthService {
	return &authServiceImpl{
		secretKey: secretKey,
		ttl:       ttl,
		now:       now,
	}
}

func (that *authServiceImpl) GenerateToken(username string) (string, error) {
	if that.secretKey == "" {
		return "", ErrNoSecretKey
	}

	if username == "" {
		return "", fmt.Errorf("%w: username is required", apperror.ErrBadRequest)
	}

	issuedAt := that.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(that.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ResolveIdentity - returns the subject of a valid token.
func (that *authServiceImpl) ResolveIdentity(tokenString string) (string, error) {
	if that.secretKey == "" {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthorized, ErrNoSecretKey)
	}

	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(that.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(that.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperror.ErrUnauthorized, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", apperror.ErrUnauthorized)
	}

	return claims.Subject, nil
}
