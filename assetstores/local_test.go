package assetstores

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSigner(t *testing.T, ttlSeconds int) *localSigner {
	signer, err := newLocalSigner("https://media.example.com", "super-secret", ttlSeconds)
	require.NoError(t, err)
	signer.now = func() time.Time {
		return time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	}
	return signer
}

func TestLocalSignURL(t *testing.T) {
	signer := testSigner(t, 60)

	url, err := signer.SignURL("/assets/spring-meet/race-start.jpg")
	require.NoError(t, err)

	expires := signer.now().Add(60 * time.Second).Unix()
	expected := fmt.Sprintf("https://media.example.com/assets/spring-meet/race-start.jpg?expires=%d&signature=%s",
		expires, signer.sign("/assets/spring-meet/race-start.jpg", expires))
	assert.Equal(t, expected, url)
}

func TestLocalSignURLEmptyPath(t *testing.T) {
	signer := testSigner(t, 60)

	_, err := signer.SignURL("")
	assert.Error(t, err)
}

func TestLocalTTLIsCapped(t *testing.T) {
	signer := testSigner(t, 7200)
	assert.Equal(t, time.Hour, signer.ttl)

	signer = testSigner(t, 0)
	assert.Equal(t, time.Hour, signer.ttl)
}

func TestLocalVerify(t *testing.T) {
	signer := testSigner(t, 60)
	path := "/assets/spring-meet/podium.jpg"
	expires := signer.now().Add(time.Minute).Unix()
	signature := signer.sign(path, expires)

	assert.True(t, signer.Verify(path, expires, signature))
	assert.False(t, signer.Verify("/assets/other.jpg", expires, signature))
	assert.False(t, signer.Verify(path, expires+1, signature))
	assert.False(t, signer.Verify(path, expires, "deadbeef"))

	// expired signatures don't verify
	stale := signer.now().Add(-time.Second).Unix()
	assert.False(t, signer.Verify(path, stale, signer.sign(path, stale)))
}

func TestLocalSignerRequiresSecret(t *testing.T) {
	_, err := newLocalSigner("https://media.example.com", "", 60)
	assert.Error(t, err)
}
