package api

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/replaykit/mediacommerce/models"
)

type collectionItemView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Price    int64  `json:"price"`
}

type collectionView struct {
	ID           string               `json:"id"`
	Slug         string               `json:"slug"`
	Name         string               `json:"name"`
	Currency     string               `json:"currency"`
	PackagePrice *int64               `json:"packagePrice,omitempty"`
	Items        []collectionItemView `json:"items"`
}

// CollectionView renders a published collection with effective item prices.
// The storefront builds its selection from this manifest.
func (a *API) CollectionView(w http.ResponseWriter, r *http.Request) error {
	slug := chi.URLParam(r, "collection_slug")
	logEntrySetField(r, "collection_slug", slug)

	collection, err := models.FindCollectionBySlug(a.db, slug)
	if err != nil {
		return err
	}

	view := &collectionView{
		ID:           collection.ID,
		Slug:         collection.Slug,
		Name:         collection.Name,
		Currency:     collection.Currency,
		PackagePrice: collection.PackagePrice,
	}
	for i := range collection.Items {
		item := &collection.Items[i]
		view.Items = append(view.Items, collectionItemView{
			ID:       item.ID,
			Title:    item.Title,
			Filename: item.Filename,
			Price:    item.EffectivePrice(collection),
		})
	}

	return sendJSON(w, http.StatusOK, view)
}
