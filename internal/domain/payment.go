package domain

import "github.com/shopspring/decimal"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPaused  PaymentStatus = "PAUSED"
)

type PaymentType string

const (
	PaymentTypePayment PaymentType = "PAYMENT"
)

type Payment struct {
	ID          int64           `json:"id"`
	Status      PaymentStatus   `json:"status"`
	Type        PaymentType     `json:"type"`
	RentalID    int64           `json:"rentalId"`
	SessionURL  string          `json:"sessionUrl"`
	SessionID   string          `json:"sessionId"`
	AmountToPay decimal.Decimal `json:"amountToPay"`
	Deleted     bool            `json:"-"`
}

// CanTransitionTo guards the status machine: PAID is terminal.
func (p *Payment) CanTransitionTo(next PaymentStatus) bool {
	if p.Status == PaymentStatusPaid {
		return next == PaymentStatusPaid
	}
	return true
}
