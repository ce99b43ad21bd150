package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
)

// StripeProvider opens Stripe Checkout sessions in payment mode.
type StripeProvider struct {
	sc      *client.API
	timeout time.Duration
}

func NewStripeProvider(secretKey string, timeout time.Duration) *StripeProvider {
	return &StripeProvider{
		sc:      client.New(secretKey, nil),
		timeout: timeout,
	}
}

func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.ClientReferenceID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx

	logger.ExternalServiceCall("stripe", "CreateCheckoutSession", "reference", req.ClientReferenceID, "amount", req.AmountMinor)
	s, err := p.sc.CheckoutSessions.New(params)
	logger.ExternalServiceResult("stripe", "CreateCheckoutSession", err, "reference", req.ClientReferenceID)
	if err != nil {
		return nil, fmt.Errorf("%w: create session for %s: %w", domain.ErrPaymentProvider, req.ClientReferenceID, err)
	}
	return &Session{ID: s.ID, URL: s.URL, Status: SessionStatus(s.Status)}, nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	logger.ExternalServiceCall("stripe", "GetCheckoutSession", "sessionID", sessionID)
	s, err := p.sc.CheckoutSessions.Get(sessionID, params)
	logger.ExternalServiceResult("stripe", "GetCheckoutSession", err, "sessionID", sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieve session %s: %w", domain.ErrPaymentProvider, sessionID, err)
	}
	return &Session{ID: s.ID, URL: s.URL, Status: SessionStatus(s.Status)}, nil
}
