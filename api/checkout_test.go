package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replaykit/mediacommerce/models"
	tu "github.com/replaykit/mediacommerce/testutils"
)

func TestCheckoutItemSelection(t *testing.T) {
	proc := &fakeProcessor{}
	a := newTestAPI(proc)

	recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
		"collectionSlug": "spring-meet",
		"email":          "a@b.com",
		"customerName":   "Alex",
		"itemIds":        []string{"item-a", "item-b"},
	}, "")

	rsp := &checkoutResponse{}
	extractPayload(t, http.StatusOK, recorder, rsp)
	assert.Equal(t, "https://pay.test/session/sess_123", rsp.CheckoutURL)
	require.NotEmpty(t, rsp.OrderID)

	order := loadOrder(t, rsp.OrderID)
	assert.Equal(t, models.PendingState, order.Status)
	assert.EqualValues(t, 2500, order.TotalAmount)
	assert.False(t, order.IsPackage)
	assert.Equal(t, "a@b.com", order.Email)
	assert.Equal(t, "sess_123", order.PaymentSessionRef)
	assert.Len(t, order.AccessToken, 43)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), order.TokenExpiresAt, time.Minute)

	require.Len(t, order.Items, 2)
	var sum int64
	for _, item := range order.Items {
		sum += item.Price
		assert.False(t, item.Downloaded)
		assert.EqualValues(t, 0, item.DownloadCount)
	}
	assert.Equal(t, order.TotalAmount, sum)

	// the processor saw one line per item, and a success URL carrying the token
	require.Len(t, proc.lastItems, 2)
	assert.EqualValues(t, 1000, proc.lastItems[0].Amount)
	assert.EqualValues(t, 1500, proc.lastItems[1].Amount)
	assert.Contains(t, proc.lastRedirects.SuccessURL, "token="+order.AccessToken)
	assert.Contains(t, proc.lastRedirects.SuccessURL, testConfig.SiteURL+"/download")
}

func TestCheckoutPackageSelection(t *testing.T) {
	proc := &fakeProcessor{}
	a := newTestAPI(proc)

	recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
		"collectionSlug": "spring-meet",
		"email":          "a@b.com",
		"isPackage":      true,
	}, "")

	rsp := &checkoutResponse{}
	extractPayload(t, http.StatusOK, recorder, rsp)

	order := loadOrder(t, rsp.OrderID)
	assert.True(t, order.IsPackage)
	assert.EqualValues(t, 2000, order.TotalAmount)

	// every item in the collection is covered, shares sum to the package price
	require.Len(t, order.Items, 3)
	var sum int64
	for _, item := range order.Items {
		sum += item.Price
	}
	assert.Equal(t, order.TotalAmount, sum)

	// a package sells as a single line named for the collection
	require.Len(t, proc.lastItems, 1)
	assert.Equal(t, "Spring Meet", proc.lastItems[0].Name)
	assert.EqualValues(t, 2000, proc.lastItems[0].Amount)
}

func TestCheckoutDropsUnknownItems(t *testing.T) {
	proc := &fakeProcessor{}
	a := newTestAPI(proc)

	recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
		"collectionSlug": "spring-meet",
		"email":          "a@b.com",
		"itemIds":        []string{"item-a", "item-x"},
	}, "")

	rsp := &checkoutResponse{}
	extractPayload(t, http.StatusOK, recorder, rsp)

	order := loadOrder(t, rsp.OrderID)
	assert.EqualValues(t, 1000, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "item-a", order.Items[0].CollectionItemID)
}

func TestCheckoutRejectsBadSelections(t *testing.T) {
	a := newTestAPI(&fakeProcessor{})

	t.Run("MissingEmail", func(t *testing.T) {
		recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
			"collectionSlug": "spring-meet",
			"itemIds":        []string{"item-a"},
		}, "")
		validateError(t, http.StatusBadRequest, recorder)
	})

	t.Run("EmptySelection", func(t *testing.T) {
		recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
			"collectionSlug": "spring-meet",
			"email":          "a@b.com",
		}, "")
		validateError(t, http.StatusBadRequest, recorder)
	})

	t.Run("OnlyUnknownItems", func(t *testing.T) {
		recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
			"collectionSlug": "spring-meet",
			"email":          "a@b.com",
			"itemIds":        []string{"item-x"},
		}, "")
		validateError(t, http.StatusBadRequest, recorder)
	})

	t.Run("PackageWithoutPackagePrice", func(t *testing.T) {
		recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
			"collectionSlug": "winter-gala",
			"email":          "a@b.com",
			"isPackage":      true,
		}, "")
		validateError(t, http.StatusBadRequest, recorder)
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
			"collectionSlug": "no-such-gallery",
			"email":          "a@b.com",
			"itemIds":        []string{"item-a"},
		}, "")
		validateError(t, http.StatusNotFound, recorder)
	})

	t.Run("UnpublishedCollection", func(t *testing.T) {
		recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
			"collectionSlug": "summer-draft",
			"email":          "a@b.com",
			"itemIds":        []string{"item-a"},
		}, "")
		validateError(t, http.StatusNotFound, recorder)
	})
}

func TestCheckoutProcessorFailure(t *testing.T) {
	a := newTestAPI(&fakeProcessor{fail: true})

	recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
		"collectionSlug": "spring-meet",
		"email":          "a@b.com",
		"itemIds":        []string{"item-a"},
	}, "")
	validateError(t, http.StatusBadGateway, recorder)

	// the order stays pending and unreferenced, waiting for offline cleanup
	var orders []models.Order
	require.NoError(t, db.Where("email = ? AND payment_session_ref = ''", "a@b.com").Find(&orders).Error)
	found := false
	for _, order := range orders {
		if order.Status == models.PendingState {
			found = true
		}
	}
	assert.True(t, found, "expected an orphaned pending order")
}

func TestCheckoutPriceIsASnapshot(t *testing.T) {
	proc := &fakeProcessor{}
	a := newTestAPI(proc)

	recorder := testEndpoint(a, http.MethodPost, "/checkout", map[string]interface{}{
		"collectionSlug": "winter-gala",
		"email":          "snapshot@b.com",
		"itemIds":        []string{"item-d"},
	}, "")
	rsp := &checkoutResponse{}
	extractPayload(t, http.StatusOK, recorder, rsp)

	// raise the collection's default price after the purchase
	require.NoError(t, db.Model(tu.WinterCollection).Update("item_price", 9999).Error)
	defer func() {
		require.NoError(t, db.Model(tu.WinterCollection).Update("item_price", 800).Error)
	}()

	order := loadOrder(t, rsp.OrderID)
	assert.EqualValues(t, 800, order.TotalAmount)
	assert.EqualValues(t, 800, order.Items[0].Price)
}
