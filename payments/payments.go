package payments

import (
	"context"

	"github.com/replaykit/mediacommerce/models"
)

// StripeProcessor is the string identifier for the Stripe payment processor.
const StripeProcessor = "stripe"

// LineItem is one line handed to the payment processor: a single priced
// entry with quantity 1. Package purchases collapse to a single synthetic
// line named for the collection.
type LineItem struct {
	Name     string
	Amount   int64
	Currency string
	Quantity int64
}

// RedirectURLs are the hosted-checkout redirect targets. The success URL
// embeds the order's access token so the buyer lands on a token-authorized
// download page without logging in.
type RedirectURLs struct {
	SuccessURL string
	CancelURL  string
}

// Session is the processor's answer: where to send the buyer and an opaque
// reference for reconciliation.
type Session struct {
	RedirectURL string
	Ref         string
}

// Processor creates hosted checkout sessions with an external payment
// processor. Implementations must bound the call with the context deadline.
type Processor interface {
	Name() string
	CreateSession(ctx context.Context, order *models.Order, items []LineItem, redirects RedirectURLs) (*Session, error)
}
