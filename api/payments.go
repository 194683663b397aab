package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/webhook"

	"github.com/replaykit/mediacommerce/models"
)

// maxWebhookBody caps how much of a webhook payload is read.
const maxWebhookBody = 1 << 16

// StripeWebhook is the payment confirmation boundary: when a checkout
// session completes, the matching order is marked completed. Stripe retries
// deliveries, so completing twice is harmless.
func (a *API) StripeWebhook(w http.ResponseWriter, r *http.Request) error {
	log := getLogEntry(r)

	payload, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		return badRequestError("Could not read webhook body: %v", err)
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), a.config.Payment.Stripe.WebhookSecret)
	if err != nil {
		return unauthorizedError("Webhook signature verification failed").WithInternalError(err)
	}

	if event.Type != "checkout.session.completed" {
		log.WithField("event_type", event.Type).Debug("Ignoring webhook event")
		return sendJSON(w, http.StatusOK, map[string]bool{"received": true})
	}

	session := &stripe.CheckoutSession{}
	if err := json.Unmarshal(event.Data.Raw, session); err != nil {
		return badRequestError("Could not parse checkout session: %v", err)
	}

	order, err := a.findOrderForSession(session)
	if err != nil {
		return err
	}

	if err := order.MarkCompleted(a.db); err != nil {
		return err
	}

	log.WithField("order_id", order.ID).Info("Order marked completed by payment confirmation")
	return sendJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// The client reference carries the order id, which survives even when the
// session ref was never written back after checkout. The ref lookup is the
// fallback.
func (a *API) findOrderForSession(session *stripe.CheckoutSession) (*models.Order, error) {
	order := &models.Order{}
	if session.ClientReferenceID != "" {
		result := a.db.First(order, "id = ?", session.ClientReferenceID)
		if result.Error == nil {
			return order, nil
		}
		if !result.RecordNotFound() {
			return nil, models.StorageError{Err: result.Error}
		}
	}

	result := a.db.First(order, "payment_session_ref = ?", session.ID)
	if result.RecordNotFound() {
		return nil, notFoundError("No order matches this payment session")
	}
	if result.Error != nil {
		return nil, models.StorageError{Err: result.Error}
	}
	return order, nil
}
