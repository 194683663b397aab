package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	token, err := Generate()
	require.NoError(t, err)

	// 32 bytes in unpadded base64url
	assert.Len(t, token, 43)
	assert.Regexp(t, `^[A-Za-z0-9_-]+$`, token)
}

func TestGenerateIsUnpredictable(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := Generate()
		require.NoError(t, err)
		assert.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}

func TestExpiredBoundary(t *testing.T) {
	expiresAt := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Expired(expiresAt, expiresAt.Add(-time.Hour)))
	// the boundary is exclusive: still valid at the expiry instant
	assert.False(t, Expired(expiresAt, expiresAt))
	assert.True(t, Expired(expiresAt, expiresAt.Add(time.Millisecond)))
	assert.True(t, Expired(expiresAt, expiresAt.Add(48*time.Hour)))
}
