package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// Len is the length of an order or request id.
const Len = 32

var reID = regexp.MustCompile(`^[a-f0-9]{32}$`)

// New returns 16 random bytes as 32 lowercase hex characters.
func New() string {
	b := make([]byte, Len/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s has the shape New produces.
func Valid(s string) bool { return reID.MatchString(s) }
