package assetstores

import (
	"fmt"

	"github.com/replaykit/mediacommerce/conf"
)

// Store issues time-limited signed GET URLs for privately stored objects.
type Store interface {
	SignURL(objectPath string) (string, error)
}

// NewStore builds the configured asset store provider.
func NewStore(config *conf.Configuration) (Store, error) {
	switch config.Downloads.Provider {
	case "hosted":
		return newHostedProvider(config.Downloads.SigningURL, config.Downloads.SigningToken)
	case "local":
		return newLocalSigner(config.Downloads.BaseURL, config.Downloads.Secret, config.Downloads.URLTTL)
	case "":
		return newNoopProvider()
	default:
		return nil, fmt.Errorf("Unknown asset store provider '%v'", config.Downloads.Provider)
	}
}
