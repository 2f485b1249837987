package selling

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de vendas
var (
	// Erros de validação do carrinho
	ErrEmptyCart            = errors.New("carrinho vazio")
	ErrInvalidQuantity      = errors.New("quantidade deve ser maior que zero")
	ErrInvalidPaymentMethod = errors.New("método de pagamento inválido")
	ErrProductUnavailable   = errors.New("produto indisponível")
	ErrSaleNotFound         = errors.New("venda não encontrada")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// SaleError é um erro com contexto adicional para vendas
type SaleError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProductID int    // ID do produto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SaleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SaleError) Unwrap() error {
	return e.Err
}

// NewSaleError cria um novo SaleError
func NewSaleError(err error, code string, details string) *SaleError {
	return &SaleError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewProductSaleError cria um novo SaleError com contexto de produto
func NewProductSaleError(err error, code string, productID int, details string) *SaleError {
	return &SaleError{
		Err:       err,
		Code:      code,
		ProductID: productID,
		Details:   details,
	}
}
