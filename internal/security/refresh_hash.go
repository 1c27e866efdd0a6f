package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// refreshDigest returns the hex SHA-256 of a refresh token. JWTs exceed bcrypt's
// 72-byte input limit, so the token is digested first and the digest is bcrypt'd.
func refreshDigest(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// HashRefreshToken returns the salted digest stored for an active refresh token.
func (h *Hasher) HashRefreshToken(token string) (string, error) {
	return h.Hash(refreshDigest(token))
}

// VerifyRefreshToken reports whether token matches a digest produced by HashRefreshToken.
func (h *Hasher) VerifyRefreshToken(token, digest string) bool {
	if token == "" {
		return false
	}
	return h.Verify(refreshDigest(token), digest)
}
