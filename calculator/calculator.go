// Package calculator turns a buyer's selection into a total amount and a
// per-item price breakdown. All arithmetic is on integer minor currency
// units; the calculator never touches the database.
package calculator

import (
	"github.com/replaykit/mediacommerce/models"
)

// Selection describes what the buyer is purchasing: either every item in the
// collection for its package price, or an explicit list of item ids.
type Selection struct {
	Package bool
	ItemIDs []string
}

// ItemPrice is the price snapshot of a single resolved item.
type ItemPrice struct {
	Item  *models.CollectionItem
	Price int64
}

// Price is the result of a price computation. Total is authoritative; the
// item prices always sum to it exactly.
type Price struct {
	Total int64
	Items []ItemPrice
}

// ComputePrice resolves a selection against a collection.
//
// In package mode every item in the collection is included and the total is
// the collection's package price, not the sum of the item prices. Each item
// is assigned floor(total/n) for bookkeeping, with the division remainder
// absorbed by the last item so the breakdown still sums to the total.
//
// In item mode, ids that don't resolve to an item of this collection are
// dropped silently. An empty selection, before or after resolution, is an
// error.
func ComputePrice(collection *models.Collection, selection Selection) (*Price, error) {
	if selection.Package {
		return packagePrice(collection)
	}
	return itemPrice(collection, selection.ItemIDs)
}

func packagePrice(collection *models.Collection) (*Price, error) {
	if collection.PackagePrice == nil {
		return nil, models.InvalidRequestError{Message: "This collection does not offer a package purchase"}
	}
	if len(collection.Items) == 0 {
		return nil, models.InvalidRequestError{Message: "This collection has no items to purchase"}
	}

	total := *collection.PackagePrice
	count := int64(len(collection.Items))
	share := total / count

	price := &Price{Total: total}
	for i := range collection.Items {
		price.Items = append(price.Items, ItemPrice{
			Item:  &collection.Items[i],
			Price: share,
		})
	}
	price.Items[len(price.Items)-1].Price += total - share*count

	return price, nil
}

func itemPrice(collection *models.Collection, itemIDs []string) (*Price, error) {
	if len(itemIDs) == 0 {
		return nil, models.InvalidRequestError{Message: "No items selected"}
	}

	byID := make(map[string]*models.CollectionItem, len(collection.Items))
	for i := range collection.Items {
		byID[collection.Items[i].ID] = &collection.Items[i]
	}

	price := &Price{}
	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		item, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true

		amount := item.EffectivePrice(collection)
		price.Items = append(price.Items, ItemPrice{Item: item, Price: amount})
		price.Total += amount
	}

	if len(price.Items) == 0 {
		return nil, models.InvalidRequestError{Message: "None of the selected items exist in this collection"}
	}

	return price, nil
}
