package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CategoryID  int             `json:"category_id"`
	Active      bool            `json:"active"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type UpdateProductRequest struct {
	ID          int              `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	CategoryID  *int             `json:"category_id"`
	Active      *bool            `json:"active"`
	Featured    *bool            `json:"featured"`
}
