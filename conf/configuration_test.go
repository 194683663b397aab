package conf

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	f, err := ioutil.TempFile("", "config-*.json")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	_, err = f.WriteString(`{
		"site_url": "https://shop.example.com",
		"db": {"driver": "sqlite3", "url": "commerce.db", "automigrate": true},
		"api": {"port": 9999},
		"payment": {"stripe": {"secret_key": "sk_test_123"}},
		"downloads": {"provider": "local", "secret": "sign-me", "url_ttl": 600}
	}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	config, err := Load(f.Name())
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", config.SiteURL)
	assert.Equal(t, "sqlite3", config.DB.Driver)
	assert.Equal(t, "commerce.db", config.DB.ConnURL)
	assert.True(t, config.DB.Automigrate)
	assert.Equal(t, 9999, config.API.Port)
	assert.Equal(t, "sk_test_123", config.Payment.Stripe.SecretKey)
	assert.Equal(t, "local", config.Downloads.Provider)
	assert.Equal(t, 600, config.Downloads.URLTTL)
}

func TestLoadDefaults(t *testing.T) {
	f, err := ioutil.TempFile("", "config-*.json")
	require.NoError(t, err)
	defer os.Remove(f.Name())

	_, err = f.WriteString(`{"site_url": "https://shop.example.com"}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	config, err := Load(f.Name())
	require.NoError(t, err)

	assert.Equal(t, 8080, config.API.Port)
	assert.Equal(t, "admin", config.JWT.AdminGroup)
	assert.Equal(t, "/", config.Payment.CancelPath)
	assert.Equal(t, 3600, config.Downloads.URLTTL)
}
