package assetstores

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxURLTTL caps how long a signed URL stays valid.
const maxURLTTL = time.Hour

// localSigner signs URLs itself with an HMAC instead of calling out to a
// storage platform. Useful when the objects are served by a fileserver that
// shares the secret, and for tests.
type localSigner struct {
	baseURL string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

func newLocalSigner(baseURL, secret string, ttlSeconds int) (*localSigner, error) {
	if secret == "" {
		return nil, errors.New("No signing secret configured for the local asset store")
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl <= 0 || ttl > maxURLTTL {
		ttl = maxURLTTL
	}

	return &localSigner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func (l *localSigner) SignURL(objectPath string) (string, error) {
	if objectPath == "" {
		return "", errors.New("can't sign an empty object path")
	}
	if !strings.HasPrefix(objectPath, "/") {
		objectPath = "/" + objectPath
	}

	expires := l.now().Add(l.ttl).Unix()
	return fmt.Sprintf("%s%s?expires=%d&signature=%s", l.baseURL, objectPath, expires, l.sign(objectPath, expires)), nil
}

// Verify checks a signature produced by SignURL. The fileserver fronting the
// objects calls this before serving.
func (l *localSigner) Verify(objectPath string, expires int64, signature string) bool {
	if l.now().Unix() > expires {
		return false
	}
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	actual, _ := hex.DecodeString(l.sign(objectPath, expires))
	return hmac.Equal(expected, actual)
}

func (l *localSigner) sign(objectPath string, expires int64) string {
	mac := hmac.New(sha256.New, l.secret)
	mac.Write([]byte(objectPath))
	mac.Write([]byte("\n"))
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
