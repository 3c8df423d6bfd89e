// Package auth authenticates API keys and scopes requests to the gateway
// account the key belongs to.
package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"strings"
)

// ChecksumLength is the length of the checksum suffix of an API key.
const ChecksumLength = 32

var checksumEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Checksum computes the checksum suffix for token.
func Checksum(token, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(token))
	return strings.ToLower(checksumEncoding.EncodeToString(mac.Sum(nil)))
}

// ValidChecksum reports whether apiKey ends with the checksum of its token.
func ValidChecksum(apiKey, secret string) bool {
	if len(apiKey) <= ChecksumLength {
		return false
	}
	token := apiKey[:len(apiKey)-ChecksumLength]
	sum := apiKey[len(apiKey)-ChecksumLength:]
	return subtle.ConstantTimeCompare([]byte(sum), []byte(Checksum(token, secret))) == 1
}
