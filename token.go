package greeenboii

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenGenerator produces per-request random tokens embedded in search URLs.
type TokenGenerator interface {
	// NextToken returns a new token. Tokens are never reused.
	NextToken() string
}

// Ensure RandomTokens implements TokenGenerator at compile time.
var _ TokenGenerator = RandomTokens{}

// RandomTokens generates 16-byte tokens from crypto/rand, hex-encoded.
type RandomTokens struct{}

// NextToken returns 32 lowercase hex characters.
func (RandomTokens) NextToken() string {
	var b [16]byte
	// crypto/rand.Read never returns an error.
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
