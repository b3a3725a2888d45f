package service

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/coffeegram/coffee-backend/internal/domain"
)

// CheckoutGateway abstracts the payment provider so tests can run
// without network access
type CheckoutGateway interface {
	CreateSession(email string, amount int) (sessionID, checkoutURL string, err error)
}

type stripeGateway struct {
	successURL string
	cancelURL  string
}

// NewStripeGateway configures the Stripe checkout gateway. The secret
// key is set on the package-level client the stripe library uses.
func NewStripeGateway(secretKey, successURL, cancelURL string) CheckoutGateway {
	stripe.Key = secretKey
	return &stripeGateway{successURL: successURL, cancelURL: cancelURL}
}

// CreateSession opens a hosted checkout for post slots. The success
// redirect carries the session id and purchase details so the client
// can confirm the payment against the API.
func (g *stripeGateway) CreateSession(email string, amount int) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Post slots"),
					},
					UnitAmount: stripe.Int64(domain.SlotUnitPriceCents),
				},
				Quantity: stripe.Int64(int64(amount)),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s?session_id={CHECKOUT_SESSION_ID}&amount=%d&email=%s",
			g.successURL, amount, email)),
		CancelURL: stripe.String(g.cancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}
