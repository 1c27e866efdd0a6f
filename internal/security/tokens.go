package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or signed with another key.
	ErrInvalidToken = errors.New("invalid token")
	// ErrConfigurationMissing is returned when a signing secret is not configured.
	ErrConfigurationMissing = errors.New("token signing secret is not configured")
)

// Claims are the JWT claims carried by both access and refresh tokens.
// Subject is the account id.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Identity is the caller identity encoded in a token.
type Identity struct {
	AccountID string
	Role      string
	Email     string
}

// TokenConfig configures a TokenIssuer.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenIssuer signs and validates HS256 access and refresh tokens. Access and
// refresh tokens use distinct secrets so neither can stand in for the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewTokenIssuer returns a TokenIssuer, or ErrConfigurationMissing if either secret is empty.
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrConfigurationMissing
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	return &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock returns a copy of i that reads the current time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	c := *i
	c.now = now
	return &c
}

// SignAccess issues a short-lived access token for id.
func (i *TokenIssuer) SignAccess(id Identity) (token string, expiresAt time.Time, err error) {
	return i.sign(id, i.accessSecret, i.accessTTL)
}

// SignRefresh issues a long-lived refresh token for id.
func (i *TokenIssuer) SignRefresh(id Identity) (token string, expiresAt time.Time, err error) {
	return i.sign(id, i.refreshSecret, i.refreshTTL)
}

// ValidateAccess verifies signature, expiry and issuer of an access token.
func (i *TokenIssuer) ValidateAccess(token string) (Identity, error) {
	return i.validate(token, i.accessSecret)
}

// ValidateRefresh verifies signature, expiry and issuer of a refresh token.
func (i *TokenIssuer) ValidateRefresh(token string) (Identity, error) {
	return i.validate(token, i.refreshSecret)
}

func (i *TokenIssuer) sign(id Identity, secret []byte, ttl time.Duration) (string, time.Time, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := i.now()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   id.AccountID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:  id.Role,
		Email: id.Email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *TokenIssuer) validate(tokenString string, secret []byte) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{AccountID: claims.Subject, Role: claims.Role, Email: claims.Email}, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
