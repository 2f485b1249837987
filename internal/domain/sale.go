package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleStatusProcessing SaleStatus = "PROCESSING"
	SaleStatusCompleted  SaleStatus = "COMPLETED"
	SaleStatusCancelled  SaleStatus = "CANCELLED"
)

// Sale é o cabeçalho de uma nota de venda. O total é sempre a soma dos
// subtotais dos itens (preço unitário x quantidade).
type Sale struct {
	ID        int             `json:"id"`
	UserID    *int            `json:"user_id"`
	PaymentID *int            `json:"payment_id"`
	Total     decimal.Decimal `json:"total"`
	Status    SaleStatus      `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Items []*SaleLineItem `json:"items,omitempty"`
}

// SaleLineItem é uma linha de item dentro de uma venda. Nome e preço do
// produto são um snapshot do momento da compra e nunca são atualizados,
// mesmo que o catálogo mude depois.
type SaleLineItem struct {
	ID          int             `json:"id"`
	SaleID      int             `json:"sale_id"`
	ProductID   *int            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Subtotal calcula o valor da linha com aritmética decimal exata
func (i *SaleLineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
