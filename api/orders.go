package api

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/replaykit/mediacommerce/models"
)

// OrderList lists orders for the admin dashboards, newest first. Supports
// filtering on email and collection_id.
func (a *API) OrderList(w http.ResponseWriter, r *http.Request) error {
	log := getLogEntry(r)

	query := a.db.Preload("Items").Order("created_at desc")

	params := r.URL.Query()
	if email := params.Get("email"); email != "" {
		query = query.Where("email = ?", email)
	}
	if collectionID := params.Get("collection_id"); collectionID != "" {
		query = query.Where("collection_id = ?", collectionID)
	}
	if status := params.Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if result := query.Find(&orders); result.Error != nil {
		return internalServerError("Error during database query").WithInternalError(result.Error)
	}

	log.WithField("order_count", len(orders)).Debugf("Successfully retrieved %d orders", len(orders))
	return sendJSON(w, http.StatusOK, adminOrders(orders))
}

// OrderView returns a single order by id.
func (a *API) OrderView(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "order_id")
	logEntrySetField(r, "order_id", id)

	order := &models.Order{}
	if result := a.db.Preload("Items").First(order, "id = ?", id); result.Error != nil {
		if result.RecordNotFound() {
			return notFoundError("Order not found")
		}
		return internalServerError("Error during database query").WithInternalError(result.Error)
	}

	return sendJSON(w, http.StatusOK, adminOrder(*order))
}

// adminOrderView exposes the token to the admin surface; the public order
// JSON never carries it.
type adminOrderView struct {
	models.Order
	DownloadToken string `json:"download_token"`
}

func adminOrder(order models.Order) adminOrderView {
	return adminOrderView{Order: order, DownloadToken: order.AccessToken}
}

func adminOrders(orders []models.Order) []adminOrderView {
	views := make([]adminOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, adminOrder(order))
	}
	return views
}
