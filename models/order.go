package models

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/pborman/uuid"
)

// PendingState is the state of an order that has been created but not paid.
const PendingState = "pending"

// CompletedState is the state of an order whose payment has been confirmed.
const CompletedState = "completed"

// FailedState is the state of an order whose payment failed or was abandoned.
const FailedState = "failed"

// RefundedState is the state of an order that has been refunded.
const RefundedState = "refunded"

// OrderStates are the possible values for the Status field.
var OrderStates = []string{
	PendingState,
	CompletedState,
	FailedState,
	RefundedState,
}

// Order is a single checkout attempt against a collection. The total and the
// item prices are snapshots taken at creation time and are never recomputed.
type Order struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id" sql:"index"`

	Email string `json:"email"`
	Name  string `json:"name,omitempty"`

	Currency    string `json:"currency"`
	TotalAmount int64  `json:"total_amount"`
	IsPackage   bool   `json:"is_package"`

	Status string `json:"status"`

	PaymentProcessor  string `json:"payment_processor,omitempty"`
	PaymentSessionRef string `json:"payment_session_ref,omitempty"`

	AccessToken    string    `json:"-" sql:"index"`
	TokenExpiresAt time.Time `json:"token_expires_at"`

	Items []*OrderItem `json:"items"`

	CreatedAt time.Time  `json:"created_at" sql:"index"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the Order model.
func (Order) TableName() string {
	return tableName("orders")
}

// NewOrder creates a new pending order for a collection.
func NewOrder(collectionID, email, name, currency string) *Order {
	return &Order{
		ID:           uuid.NewRandom().String(),
		CollectionID: collectionID,
		Email:        email,
		Name:         name,
		Currency:     currency,
		Status:       PendingState,
	}
}

// OrderItem is one purchased item, priced at purchase time and tracked for
// download usage. Only the download bookkeeping fields change after creation.
type OrderItem struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id" sql:"index"`

	CollectionItemID string `json:"collection_item_id"`

	Title      string `json:"title"`
	Filename   string `json:"filename"`
	ObjectPath string `json:"-"`

	Price int64 `json:"price"`

	Downloaded       bool       `json:"downloaded"`
	DownloadCount    int64      `json:"download_count"`
	LastDownloadedAt *time.Time `json:"last_downloaded_at,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// TableName returns the database table name for the OrderItem model.
func (OrderItem) TableName() string {
	return tableName("order_items")
}

// FindOrderByToken loads an order and its items by access token.
func FindOrderByToken(db *gorm.DB, token string) (*Order, error) {
	if token == "" {
		return nil, NotFoundError{"Order"}
	}
	order := &Order{}
	result := db.Preload("Items").First(order, "access_token = ?", token)
	if result.RecordNotFound() {
		return nil, NotFoundError{"Order"}
	}
	if result.Error != nil {
		return nil, StorageError{result.Error}
	}
	return order, nil
}

// MarkCompleted transitions a pending order to completed. Completing an
// already completed order is a no-op so payment confirmations can be
// redelivered safely.
func (o *Order) MarkCompleted(db *gorm.DB) error {
	if o.Status == CompletedState {
		return nil
	}
	o.Status = CompletedState
	if result := db.Model(o).Update("status", CompletedState); result.Error != nil {
		return StorageError{result.Error}
	}
	return nil
}

// ExpireStaleOrders marks pending orders whose access token has already
// expired as failed. Abandoned checkouts produce pending orders that nothing
// else cleans up; this is run offline from the expire command.
func ExpireStaleOrders(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&Order{}).
		Where("status = ? AND token_expires_at < ?", PendingState, now).
		Update("status", FailedState)
	if result.Error != nil {
		return 0, StorageError{result.Error}
	}
	return result.RowsAffected, nil
}
