// Package downloads authorizes access-token requests and produces signed
// retrieval URLs for purchased items.
package downloads

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/replaykit/mediacommerce/assetstores"
	"github.com/replaykit/mediacommerce/models"
	"github.com/replaykit/mediacommerce/tokens"
)

// AccessState is the outcome of validating an access token.
type AccessState int

const (
	// AccessValid means the token matches a completed order.
	AccessValid AccessState = iota
	// AccessNotFound means the token matches nothing. Surfaced to the user
	// as a generic denial so tokens can't be enumerated.
	AccessNotFound
	// AccessExpired means the token matched an order but is past expiry.
	AccessExpired
	// AccessUnpaid means the token matched an order whose payment has not
	// been confirmed.
	AccessUnpaid
)

// AccessResult is a tagged variant so the HTTP boundary can handle every
// outcome explicitly instead of decoding thrown errors.
type AccessResult struct {
	State AccessState
	Order *models.Order
}

// Authorize looks up the order behind a token and classifies the access.
// The returned error is only ever a storage failure; every expected outcome
// is a state on the result.
func Authorize(db *gorm.DB, token string, now time.Time) (AccessResult, error) {
	order, err := models.FindOrderByToken(db, token)
	if err != nil {
		if models.IsNotFoundError(err) {
			return AccessResult{State: AccessNotFound}, nil
		}
		return AccessResult{}, err
	}

	if tokens.Expired(order.TokenExpiresAt, now) {
		return AccessResult{State: AccessExpired, Order: order}, nil
	}

	if order.Status != models.CompletedState {
		return AccessResult{State: AccessUnpaid, Order: order}, nil
	}

	return AccessResult{State: AccessValid, Order: order}, nil
}

// Item is a signed, ready-to-serve download.
type Item struct {
	SignedURL string            `json:"signedUrl"`
	Filename  string            `json:"filename"`
	OrderItem *models.OrderItem `json:"-"`
}

// FetchItem locates itemID within the order's items, signs a retrieval URL
// and records the access. Tokens are scoped: an item id from another order
// is simply not found here, never served.
//
// Re-downloading is allowed; the counter is informational and incremented
// per fetch.
func FetchItem(db *gorm.DB, store assetstores.Store, order *models.Order, itemID string, now time.Time) (*Item, error) {
	var target *models.OrderItem
	for _, item := range order.Items {
		if item.CollectionItemID == itemID || item.ID == itemID {
			target = item
			break
		}
	}
	if target == nil {
		return nil, models.NotFoundError{What: "Item"}
	}

	signedURL, err := store.SignURL(target.ObjectPath)
	if err != nil {
		return nil, models.StorageError{Err: err}
	}

	result := db.Model(target).Updates(map[string]interface{}{
		"downloaded":         true,
		"download_count":     gorm.Expr("download_count + 1"),
		"last_downloaded_at": now,
	})
	if result.Error != nil {
		return nil, models.StorageError{Err: result.Error}
	}

	return &Item{
		SignedURL: signedURL,
		Filename:  target.Filename,
		OrderItem: target,
	}, nil
}
