package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	// Burst of two passes, the third is throttled.
	assert.True(t, rl.Allow("member-1"))
	assert.True(t, rl.Allow("member-1"))
	assert.False(t, rl.Allow("member-1"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	assert.True(t, rl.Allow("member-1"))
	assert.False(t, rl.Allow("member-1"))

	// A different key has its own budget.
	assert.True(t, rl.Allow("member-2"))
}
