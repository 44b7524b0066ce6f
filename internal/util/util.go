// Package util provides small helpers shared across the server.
package util

import (
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
)

// GenUUID generates a new RFC 4122 UUID string.
func GenUUID() string {
	return uuid.New().String()
}

// GenShortUID generates a compact, URL-safe unique identifier.
// Used for member and card UIDs exposed through the API.
func GenShortUID() string {
	return shortuuid.New()
}

// ValidateUID reports whether the given string is a usable UID.
// UIDs must be non-empty and at most 64 characters.
func ValidateUID(uid string) bool {
	return len(uid) > 0 && len(uid) <= 64
}
