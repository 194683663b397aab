package testutils

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/pborman/uuid"

	"github.com/replaykit/mediacommerce/models"
	"github.com/replaykit/mediacommerce/tokens"
)

var SpringCollection *models.Collection
var ItemA, ItemB, ItemC models.CollectionItem

var WinterCollection *models.Collection
var ItemD models.CollectionItem

var DraftCollection *models.Collection

var CompletedOrder *models.Order
var ExpiredOrder *models.Order
var PendingOrder *models.Order
var SecondOrder *models.Order

func price(v int64) *int64 {
	return &v
}

// LoadTestData seeds the database with two published collections, a draft
// one, and orders in every access-relevant state.
func LoadTestData(db *gorm.DB) error {
	springPackage := price(2000)
	SpringCollection = &models.Collection{
		ID:           uuid.NewRandom().String(),
		Slug:         "spring-meet",
		Name:         "Spring Meet",
		State:        models.PublishedState,
		Currency:     "usd",
		ItemPrice:    1000,
		PackagePrice: springPackage,
	}
	ItemA = models.CollectionItem{
		ID:           "item-a",
		CollectionID: SpringCollection.ID,
		Title:        "Race Start",
		Filename:     "race-start.jpg",
		ObjectPath:   "/assets/spring-meet/race-start.jpg",
	}
	ItemB = models.CollectionItem{
		ID:            "item-b",
		CollectionID:  SpringCollection.ID,
		Title:         "Finish Line Clip",
		Filename:      "finish-line.mp4",
		ObjectPath:    "/assets/spring-meet/finish-line.mp4",
		OverridePrice: price(1500),
	}
	ItemC = models.CollectionItem{
		ID:           "item-c",
		CollectionID: SpringCollection.ID,
		Title:        "Podium",
		Filename:     "podium.jpg",
		ObjectPath:   "/assets/spring-meet/podium.jpg",
	}

	WinterCollection = &models.Collection{
		ID:        uuid.NewRandom().String(),
		Slug:      "winter-gala",
		Name:      "Winter Gala",
		State:     models.PublishedState,
		Currency:  "usd",
		ItemPrice: 800,
	}
	ItemD = models.CollectionItem{
		ID:           "item-d",
		CollectionID: WinterCollection.ID,
		Title:        "Opening Dance",
		Filename:     "opening-dance.mp4",
		ObjectPath:   "/assets/winter-gala/opening-dance.mp4",
	}

	DraftCollection = &models.Collection{
		ID:        uuid.NewRandom().String(),
		Slug:      "summer-draft",
		Name:      "Summer (unpublished)",
		State:     models.DraftState,
		Currency:  "usd",
		ItemPrice: 500,
	}

	CompletedOrder = newTestOrder(SpringCollection, models.CompletedState, time.Now().Add(tokens.Validity), ItemA, ItemB)
	ExpiredOrder = newTestOrder(SpringCollection, models.CompletedState, time.Now().Add(-time.Hour), ItemA)
	PendingOrder = newTestOrder(SpringCollection, models.PendingState, time.Now().Add(tokens.Validity), ItemA)
	SecondOrder = newTestOrder(WinterCollection, models.CompletedState, time.Now().Add(tokens.Validity), ItemD)

	objects := []interface{}{
		SpringCollection, &ItemA, &ItemB, &ItemC,
		WinterCollection, &ItemD,
		DraftCollection,
		CompletedOrder, ExpiredOrder, PendingOrder, SecondOrder,
	}
	for _, obj := range objects {
		// gorm saves the order items along with their order
		if result := db.Create(obj); result.Error != nil {
			return result.Error
		}
	}
	return nil
}

func newTestOrder(collection *models.Collection, status string, expiresAt time.Time, items ...models.CollectionItem) *models.Order {
	order := models.NewOrder(collection.ID, "buyer@example.com", "Test Buyer", collection.Currency)
	order.Status = status
	order.TokenExpiresAt = expiresAt

	token, err := tokens.Generate()
	if err != nil {
		panic(err)
	}
	order.AccessToken = token

	for i := range items {
		item := &items[i]
		amount := item.EffectivePrice(collection)
		order.Items = append(order.Items, &models.OrderItem{
			ID:               uuid.NewRandom().String(),
			OrderID:          order.ID,
			CollectionItemID: item.ID,
			Title:            item.Title,
			Filename:         item.Filename,
			ObjectPath:       item.ObjectPath,
			Price:            amount,
		})
		order.TotalAmount += amount
	}
	return order
}
