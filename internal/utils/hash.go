package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// VerificationTokenSize is the number of random bytes behind a testimonial
// verification token.
const VerificationTokenSize = 32

// VerificationToken pairs the raw token mailed to the submitter with the
// digest that is persisted. The raw value never reaches storage.
type VerificationToken struct {
	Raw  string
	Hash string
}

func NewVerificationToken() (VerificationToken, error) {
	raw, err := GenerateRandomToken(VerificationTokenSize)
	if err != nil {
		return VerificationToken{}, err
	}
	return VerificationToken{Raw: raw, Hash: HashToken(raw)}, nil
}

// GenerateRandomToken returns size random bytes as unpadded base64url, safe
// to embed in a URL path segment.
func GenerateRandomToken(size int) (string, error) {
	buffer := make([]byte, size)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// HashToken digests verification links and bearer tokens for lookup tables.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// NormalizeEmail is the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
