package stripe

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/replaykit/mediacommerce/models"
	"github.com/replaykit/mediacommerce/payments"
	stripe "github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/client"
)

// checkoutBaseURL is where Stripe hosts checkout sessions.
const checkoutBaseURL = "https://checkout.stripe.com/pay/"

// callTimeout bounds every call to Stripe. A processor timeout is a failure,
// not a retryable success.
const callTimeout = 10 * time.Second

type stripeProcessor struct {
	client *client.API
}

// Config contains the Stripe-specific configuration for payment processing.
type Config struct {
	SecretKey string `mapstructure:"secret_key" json:"secret_key"`
}

// NewProcessor creates a new Stripe payment processor using the provided
// configuration.
func NewProcessor(config Config) (payments.Processor, error) {
	if config.SecretKey == "" {
		return nil, errors.New("Stripe configuration missing secret_key")
	}

	s := stripeProcessor{
		client: &client.API{},
	}
	s.client.Init(config.SecretKey, stripe.NewBackends(&http.Client{Timeout: callTimeout}))
	return &s, nil
}

func (s *stripeProcessor) Name() string {
	return payments.StripeProcessor
}

// CreateSession opens a hosted checkout session. The order id rides along as
// the client reference so the confirmation webhook can find the order even
// if the session ref was never written back.
func (s *stripeProcessor) CreateSession(ctx context.Context, order *models.Order, items []payments.LineItem, redirects payments.RedirectURLs) (*payments.Session, error) {
	params := &stripe.CheckoutSessionParams{
		SuccessURL:         stripe.String(redirects.SuccessURL),
		CancelURL:          stripe.String(redirects.CancelURL),
		CustomerEmail:      stripe.String(order.Email),
		ClientReferenceID:  stripe.String(order.ID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	for _, item := range items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Name:     stripe.String(item.Name),
			Amount:   stripe.Int64(item.Amount),
			Currency: stripe.String(item.Currency),
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	session, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, errors.Wrap(err, "creating Stripe checkout session")
	}

	return &payments.Session{
		RedirectURL: checkoutBaseURL + session.ID,
		Ref:         session.ID,
	}, nil
}
