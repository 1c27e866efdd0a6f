package security

import (
	"strings"
	"testing"
)

func TestRefreshDigest_Consistent(t *testing.T) {
	d1 := refreshDigest("test-refresh-token-123")
	d2 := refreshDigest("test-refresh-token-123")
	if d1 != d2 {
		t.Errorf("refreshDigest not consistent: %q vs %q", d1, d2)
	}
	if len(d1) != 64 {
		t.Errorf("digest length = %d, want 64 (SHA-256 hex)", len(d1))
	}
}

func TestHasher_RefreshTokenRoundTrip(t *testing.T) {
	h := NewHasher(4)
	token := "header." + strings.Repeat("p", 200) + ".sig"
	digest, err := h.HashRefreshToken(token)
	if err != nil {
		t.Fatalf("HashRefreshToken: %v", err)
	}
	if !h.VerifyRefreshToken(token, digest) {
		t.Fatal("VerifyRefreshToken should accept the original token")
	}
}

func TestHasher_RefreshTokenDiffersPastBcryptLimit(t *testing.T) {
	h := NewHasher(4)
	prefix := strings.Repeat("x", 100)
	digest, err := h.HashRefreshToken(prefix + "a")
	if err != nil {
		t.Fatalf("HashRefreshToken: %v", err)
	}
	if h.VerifyRefreshToken(prefix+"b", digest) {
		t.Fatal("tokens differing after byte 72 must not verify")
	}
}

func TestHasher_VerifyRefreshTokenEmpty(t *testing.T) {
	h := NewHasher(4)
	digest, _ := h.HashRefreshToken("token")
	if h.VerifyRefreshToken("", digest) {
		t.Error("empty token should not verify")
	}
	if h.VerifyRefreshToken("token", "") {
		t.Error("empty digest should not verify")
	}
}
