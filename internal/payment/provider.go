// Package payment is the boundary to the external checkout provider.
package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	StatusOpen     SessionStatus = "open"
	StatusComplete SessionStatus = "complete"
	StatusExpired  SessionStatus = "expired"
)

// SessionIDPlaceholder is substituted by the provider with the real
// session id when redirecting back to us.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

type SessionRequest struct {
	AmountMinor       int64
	Currency          string
	ProductName       string
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
}

type Session struct {
	ID     string
	URL    string
	Status SessionStatus
}

// Provider opens and inspects checkout sessions. Implementations wrap every
// failure, including timeouts, in domain.ErrPaymentProvider.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}

var hundred = decimal.NewFromInt(100)

// ToMinorUnits multiplies by 100 and truncates toward zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).IntPart()
}

// CallbackURLs builds the success and cancel URLs under the public domain.
func CallbackURLs(publicDomain string) (success, cancel string) {
	base := strings.TrimRight(publicDomain, "/")
	return base + "/payments/success/" + SessionIDPlaceholder,
		base + "/payments/cancel/" + SessionIDPlaceholder
}
