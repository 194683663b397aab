package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// DraftState is the state of a collection that is still being assembled.
const DraftState = "draft"

// PublishedState is the state of a collection that can be purchased.
const PublishedState = "published"

// ArchivedState is the state of a collection that is no longer for sale.
const ArchivedState = "archived"

// Collection is a sellable gallery of media items with its own pricing rules.
type Collection struct {
	ID   string `json:"id"`
	Slug string `json:"slug" sql:"index"`
	Name string `json:"name"`

	State string `json:"state"`

	Currency string `json:"currency"`

	// ItemPrice is the default price of a single item in minor currency
	// units. Items may override it individually.
	ItemPrice int64 `json:"item_price"`

	// PackagePrice, when set, is the flat price for every item in the
	// collection. It may be lower than the sum of the item prices.
	PackagePrice *int64 `json:"package_price,omitempty"`

	Items []CollectionItem `json:"items"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the Collection model.
func (Collection) TableName() string {
	return tableName("collections")
}

// Purchasable returns whether orders can currently be created against the
// collection.
func (c *Collection) Purchasable() bool {
	return c.State == PublishedState
}

// CollectionItem is one addressable media asset inside a collection.
type CollectionItem struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id" sql:"index"`

	Title      string `json:"title"`
	Filename   string `json:"filename"`
	ObjectPath string `json:"-"`

	// OverridePrice replaces the collection's default item price when set.
	OverridePrice *int64 `json:"override_price,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the CollectionItem model.
func (CollectionItem) TableName() string {
	return tableName("collection_items")
}

// EffectivePrice is the price the item sells for inside its collection.
func (i *CollectionItem) EffectivePrice(c *Collection) int64 {
	if i.OverridePrice != nil {
		return *i.OverridePrice
	}
	return c.ItemPrice
}

// FindCollectionBySlug loads a purchasable collection and its items. Draft
// and archived collections report not found, same as unknown slugs.
func FindCollectionBySlug(db *gorm.DB, slug string) (*Collection, error) {
	collection := &Collection{}
	result := db.Preload("Items").First(collection, "slug = ?", slug)
	if result.RecordNotFound() {
		return nil, NotFoundError{"Collection"}
	}
	if result.Error != nil {
		return nil, StorageError{result.Error}
	}
	if !collection.Purchasable() {
		return nil, NotFoundError{"Collection"}
	}
	return collection, nil
}
