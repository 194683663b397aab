package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pborman/uuid"
	"github.com/sirupsen/logrus"

	"github.com/replaykit/mediacommerce/calculator"
	"github.com/replaykit/mediacommerce/models"
	"github.com/replaykit/mediacommerce/payments"
	"github.com/replaykit/mediacommerce/tokens"
)

// processorTimeout bounds the checkout session call to the payment
// processor.
const processorTimeout = 10 * time.Second

type checkoutParams struct {
	CollectionSlug string   `json:"collectionSlug"`
	Email          string   `json:"email"`
	CustomerName   string   `json:"customerName"`
	ItemIDs        []string `json:"itemIds"`
	IsPackage      bool     `json:"isPackage"`
}

type checkoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	OrderID     string `json:"orderId"`
}

// CheckoutCreate computes the price of a selection, writes the order and its
// items as one unit, and opens a hosted payment session. The buyer is
// redirected to the processor; the success URL carries the order's access
// token.
//
// Retrying a failed checkout with the same inputs creates a second pending
// order. That is accepted: nothing has been charged, and only a completed
// order grants access. Stale pending orders are reaped offline.
func (a *API) CheckoutCreate(w http.ResponseWriter, r *http.Request) error {
	params := &checkoutParams{}
	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		return badRequestError("Could not read checkout params: %v", err)
	}

	if params.Email == "" {
		return fromDomainError(models.ValidationError{Message: "An email is required to create an order"})
	}

	collection, err := models.FindCollectionBySlug(a.db, params.CollectionSlug)
	if err != nil {
		return err
	}

	selection := calculator.Selection{Package: params.IsPackage, ItemIDs: params.ItemIDs}
	price, err := calculator.ComputePrice(collection, selection)
	if err != nil {
		return err
	}

	order, err := a.createOrder(collection, params, price)
	if err != nil {
		return err
	}

	log := logEntrySetFields(r, logrus.Fields{
		"order_id":        order.ID,
		"collection_slug": collection.Slug,
	})
	log.WithFields(logrus.Fields{
		"email":        order.Email,
		"total_amount": order.TotalAmount,
		"is_package":   order.IsPackage,
	}).Debug("Created order, opening payment session")

	session, err := a.openPaymentSession(r.Context(), collection, order, price)
	if err != nil {
		return fromDomainError(models.PaymentProcessorError{Err: err})
	}

	// The ref is reconciliation metadata only. If this write fails the
	// checkout still proceeds.
	order.PaymentSessionRef = session.Ref
	if result := a.db.Model(order).Updates(models.Order{
		PaymentProcessor:  a.processor.Name(),
		PaymentSessionRef: session.Ref,
	}); result.Error != nil {
		log.WithError(result.Error).Warn("Failed to record the payment session ref on the order")
	}

	log.Infof("Successfully created order %s", order.ID)
	return sendJSON(w, http.StatusOK, &checkoutResponse{
		CheckoutURL: session.RedirectURL,
		OrderID:     order.ID,
	})
}

// createOrder persists the order and its priced items atomically. A partial
// write is rolled back: no order may exist without items summing to its
// total.
func (a *API) createOrder(collection *models.Collection, params *checkoutParams, price *calculator.Price) (*models.Order, error) {
	order := models.NewOrder(collection.ID, params.Email, params.CustomerName, collection.Currency)
	order.TotalAmount = price.Total
	order.IsPackage = params.IsPackage

	token, err := tokens.Generate()
	if err != nil {
		return nil, models.StorageError{Err: err}
	}
	order.AccessToken = token
	order.TokenExpiresAt = time.Now().Add(tokens.Validity)

	tx := a.db.Begin()
	if tx.Error != nil {
		return nil, models.StorageError{Err: tx.Error}
	}

	if result := tx.Create(order); result.Error != nil {
		tx.Rollback()
		return nil, models.StorageError{Err: result.Error}
	}

	for _, itemPrice := range price.Items {
		item := &models.OrderItem{
			ID:               uuid.NewRandom().String(),
			OrderID:          order.ID,
			CollectionItemID: itemPrice.Item.ID,
			Title:            itemPrice.Item.Title,
			Filename:         itemPrice.Item.Filename,
			ObjectPath:       itemPrice.Item.ObjectPath,
			Price:            itemPrice.Price,
		}
		if result := tx.Create(item); result.Error != nil {
			tx.Rollback()
			return nil, models.StorageError{Err: result.Error}
		}
		order.Items = append(order.Items, item)
	}

	if result := tx.Commit(); result.Error != nil {
		return nil, models.StorageError{Err: result.Error}
	}

	return order, nil
}

func (a *API) openPaymentSession(ctx context.Context, collection *models.Collection, order *models.Order, price *calculator.Price) (*payments.Session, error) {
	var lineItems []payments.LineItem
	if order.IsPackage {
		lineItems = []payments.LineItem{{
			Name:     collection.Name,
			Amount:   order.TotalAmount,
			Currency: order.Currency,
			Quantity: 1,
		}}
	} else {
		for _, item := range order.Items {
			lineItems = append(lineItems, payments.LineItem{
				Name:     item.Title,
				Amount:   item.Price,
				Currency: order.Currency,
				Quantity: 1,
			})
		}
	}

	redirects := payments.RedirectURLs{
		SuccessURL: fmt.Sprintf("%s/download?token=%s", a.config.SiteURL, order.AccessToken),
		CancelURL:  a.config.SiteURL + a.config.Payment.CancelPath,
	}

	ctx, cancel := context.WithTimeout(ctx, processorTimeout)
	defer cancel()

	return a.processor.CreateSession(ctx, order, lineItems, redirects)
}
