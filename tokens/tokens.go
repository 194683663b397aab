// Package tokens mints the bearer access tokens that stand in for
// authentication after a purchase. A token is an opaque capability: whoever
// holds the string gets download access to the order it is bound to.
package tokens

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/pkg/errors"
)

// tokenBytes is the entropy of a generated token. 32 bytes gives 256 bits,
// well past the point where guessing is a concern.
const tokenBytes = 32

// Validity is the fixed lifetime of an access token, counted from issuance.
// There is no sliding expiration.
const Validity = 7 * 24 * time.Hour

// Generate returns a new random access token in the URL-safe base64
// alphabet. Tokens carry no structure; they can't be derived from the order
// or the buyer.
func Generate() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "reading random bytes for access token")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Expired reports whether a token past its expiry. The boundary is
// exclusive: a token checked at exactly its expiry instant is still valid.
func Expired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}
