package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestDeterministic(t *testing.T) {
	assert.Equal(t, digest("password"), digest("password"))
	assert.NotEqual(t, digest("password"), digest("Password"))
	assert.NotEmpty(t, digest(""))
}

func TestFallbackDigestDeterministic(t *testing.T) {
	assert.Equal(t, fallbackDigest("password"), fallbackDigest("password"))
	assert.NotEqual(t, fallbackDigest("password"), fallbackDigest("passwore"))
	assert.Equal(t, "0", fallbackDigest(""))
}
