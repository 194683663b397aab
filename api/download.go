package api

import (
	"net/http"
	"time"

	"github.com/replaykit/mediacommerce/downloads"
	"github.com/replaykit/mediacommerce/models"
)

type manifestItem struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Filename      string `json:"filename"`
	Price         int64  `json:"price"`
	Downloaded    bool   `json:"downloaded"`
	DownloadCount int64  `json:"downloadCount"`
}

type manifestResponse struct {
	OrderID        string         `json:"orderId"`
	CollectionID   string         `json:"collectionId"`
	IsPackage      bool           `json:"isPackage"`
	TokenExpiresAt time.Time      `json:"tokenExpiresAt"`
	Items          []manifestItem `json:"items"`
}

// DownloadView authorizes an access token. Without item_id it renders the
// order's item manifest; with it, a signed retrieval URL for that item.
//
// A token that matches nothing is reported as a generic denial so order
// tokens can't be probed for existence.
func (a *API) DownloadView(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	token := query.Get("token")
	itemID := query.Get("itemId")
	if itemID == "" {
		itemID = query.Get("item_id")
	}

	now := time.Now()
	result, err := downloads.Authorize(a.db, token, now)
	if err != nil {
		return err
	}

	switch result.State {
	case downloads.AccessNotFound:
		return notFoundError("Access denied")
	case downloads.AccessExpired:
		return fromDomainError(models.ExpiredTokenError{})
	case downloads.AccessUnpaid:
		return forbiddenError("This order has not been paid yet")
	}

	order := result.Order
	log := logEntrySetField(r, "order_id", order.ID)

	if itemID == "" {
		manifest := &manifestResponse{
			OrderID:        order.ID,
			CollectionID:   order.CollectionID,
			IsPackage:      order.IsPackage,
			TokenExpiresAt: order.TokenExpiresAt,
		}
		for _, item := range order.Items {
			manifest.Items = append(manifest.Items, manifestItem{
				ID:            item.CollectionItemID,
				Title:         item.Title,
				Filename:      item.Filename,
				Price:         item.Price,
				Downloaded:    item.Downloaded,
				DownloadCount: item.DownloadCount,
			})
		}
		return sendJSON(w, http.StatusOK, manifest)
	}

	item, err := downloads.FetchItem(a.db, a.assets, order, itemID, now)
	if err != nil {
		return err
	}

	log.WithField("item_id", itemID).Debug("Signed download URL")
	return sendJSON(w, http.StatusOK, item)
}
