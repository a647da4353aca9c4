package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenMissing   = errors.New("token is missing")
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrSecretRequired = errors.New("token signing secret is required")
)

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID   uint64
	Username string
}

// Claims is the signed token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
}

// Token is a freshly signed credential.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a TokenManager.
type Option func(*TokenManager)

// WithIssuer sets the iss claim written and required by the manager.
func WithIssuer(issuer string) Option {
	return func(m *TokenManager) {
		m.issuer = issuer
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		m.now = now
	}
}

// NewTokenManager creates a TokenManager signing with secret; tokens live for ttl.
func NewTokenManager(secret string, ttl time.Duration, opts ...Option) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	m := &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a token asserting id.
func (m *TokenManager) Issue(id Identity) (Token, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   strconv.FormatUint(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:   id.UserID,
		Username: id.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrTokenMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}

	if claims.UserID == 0 {
		return Identity{}, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// mapJWTError folds jwt library errors into ErrTokenExpired or ErrTokenInvalid.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	}
	return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
}
