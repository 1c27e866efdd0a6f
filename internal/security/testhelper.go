package security

import "time"

// Fixed secrets for unit tests only. Do not use in production.
const (
	testAccessSecret  = "test-access-secret-0123456789abcdef"
	testRefreshSecret = "test-refresh-secret-0123456789abcdef"
)

// NewTestTokenIssuer returns a TokenIssuer with fixed test secrets, a 15 minute
// access lifetime and a 24 hour refresh lifetime. For unit tests only.
func NewTestTokenIssuer() *TokenIssuer {
	i, err := NewTokenIssuer(TokenConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		Issuer:        "test-issuer",
	})
	if err != nil {
		panic(err)
	}
	return i
}
