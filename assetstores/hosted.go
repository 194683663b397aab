package assetstores

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// hostedProvider asks an external storage platform's signing endpoint for a
// short-lived public URL of a private object.
type hostedProvider struct {
	client   *http.Client
	endpoint string
	token    string
}

func newHostedProvider(endpoint, token string) (*hostedProvider, error) {
	if endpoint == "" {
		return nil, errors.New("No signing endpoint configured for the hosted asset store")
	}
	if token == "" {
		return nil, errors.New("No access token configured for the hosted asset store")
	}

	return &hostedProvider{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
		token:    token,
	}, nil
}

type hostedSignature struct {
	URL string `json:"url"`
}

func (h *hostedProvider) SignURL(objectPath string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, h.endpoint+"?path="+url.QueryEscape(objectPath), nil)
	if err != nil {
		return "", err
	}
	req.Header.Add("Authorization", "Bearer "+h.token)

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("signing endpoint responded with status %d", resp.StatusCode)
	}

	signature := &hostedSignature{}
	if err := json.NewDecoder(resp.Body).Decode(signature); err != nil {
		return "", err
	}
	if signature.URL == "" {
		return "", errors.New("signing endpoint returned an empty URL")
	}

	return signature.URL, nil
}
