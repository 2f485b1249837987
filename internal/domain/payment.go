package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodPaypal PaymentMethod = "paypal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

type Payment struct {
	ID            int             `json:"id"`
	UserID        int             `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID *string         `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ValidPaymentMethod indica se o método informado pelo cliente é aceito
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCash || m == PaymentMethodPaypal
}
