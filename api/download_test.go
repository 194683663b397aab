package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaykit/mediacommerce/downloads"
	tu "github.com/replaykit/mediacommerce/testutils"
)

func downloadURL(token, itemID string) string {
	u := url.Values{}
	u.Set("token", token)
	if itemID != "" {
		u.Set("itemId", itemID)
	}
	return "/download?" + u.Encode()
}

func TestDownloadManifest(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	recorder := testEndpoint(a, http.MethodGet, downloadURL(tu.CompletedOrder.AccessToken, ""), nil, "")

	manifest := &manifestResponse{}
	extractPayload(t, http.StatusOK, recorder, manifest)

	assert.Equal(t, tu.CompletedOrder.ID, manifest.OrderID)
	require.Len(t, manifest.Items, 2)

	byID := map[string]manifestItem{}
	for _, item := range manifest.Items {
		byID[item.ID] = item
	}
	require.Contains(t, byID, "item-a")
	require.Contains(t, byID, "item-b")
	assert.Equal(t, "race-start.jpg", byID["item-a"].Filename)
	assert.EqualValues(t, 1000, byID["item-a"].Price)
	assert.EqualValues(t, 1500, byID["item-b"].Price)
}

func TestDownloadFetchItem(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	recorder := testEndpoint(a, http.MethodGet, downloadURL(tu.CompletedOrder.AccessToken, "item-b"), nil, "")

	item := &downloads.Item{}
	extractPayload(t, http.StatusOK, recorder, item)
	assert.Equal(t, "finish-line.mp4", item.Filename)
	assert.Contains(t, item.SignedURL, "https://media.test/assets/spring-meet/finish-line.mp4")
	assert.Contains(t, item.SignedURL, "expires=")
	assert.Contains(t, item.SignedURL, "signature=")

	order := loadOrder(t, tu.CompletedOrder.ID)
	for _, stored := range order.Items {
		if stored.CollectionItemID != "item-b" {
			continue
		}
		assert.True(t, stored.Downloaded)
		assert.EqualValues(t, 1, stored.DownloadCount)
		require.NotNil(t, stored.LastDownloadedAt)
	}

	// re-downloading is allowed and counted again
	recorder = testEndpoint(a, http.MethodGet, downloadURL(tu.CompletedOrder.AccessToken, "item-b"), nil, "")
	extractPayload(t, http.StatusOK, recorder, item)

	order = loadOrder(t, tu.CompletedOrder.ID)
	for _, stored := range order.Items {
		if stored.CollectionItemID != "item-b" {
			continue
		}
		assert.True(t, stored.Downloaded)
		assert.EqualValues(t, 2, stored.DownloadCount)
	}
}

func TestDownloadTokenIsScopedToItsOrder(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	// item-a belongs to the spring order, not the winter one
	recorder := testEndpoint(a, http.MethodGet, downloadURL(tu.SecondOrder.AccessToken, "item-a"), nil, "")
	validateError(t, http.StatusNotFound, recorder)
}

func TestDownloadUnknownToken(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	recorder := testEndpoint(a, http.MethodGet, downloadURL("not-a-real-token", ""), nil, "")
	validateError(t, http.StatusNotFound, recorder)
	assert.Contains(t, recorder.Body.String(), "Access denied")
}

func TestDownloadMissingToken(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	recorder := testEndpoint(a, http.MethodGet, "/download", nil, "")
	validateError(t, http.StatusNotFound, recorder)
}

func TestDownloadExpiredToken(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	recorder := testEndpoint(a, http.MethodGet, downloadURL(tu.ExpiredOrder.AccessToken, ""), nil, "")
	validateError(t, http.StatusForbidden, recorder)
	assert.Contains(t, recorder.Body.String(), "Download link has expired")

	// expired wins over everything, including item fetches
	recorder = testEndpoint(a, http.MethodGet, downloadURL(tu.ExpiredOrder.AccessToken, "item-a"), nil, "")
	validateError(t, http.StatusForbidden, recorder)
}

func TestDownloadUnpaidOrder(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	recorder := testEndpoint(a, http.MethodGet, downloadURL(tu.PendingOrder.AccessToken, ""), nil, "")
	validateError(t, http.StatusForbidden, recorder)
	assert.Contains(t, recorder.Body.String(), "has not been paid")
}

func TestDownloadUnknownItemInOrder(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	// item-c exists in the collection but was never purchased on this order
	recorder := testEndpoint(a, http.MethodGet, downloadURL(tu.CompletedOrder.AccessToken, "item-c"), nil, "")
	validateError(t, http.StatusNotFound, recorder)
}
