package cataloging

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de catálogo
var (
	// Erros de validação
	ErrNameRequired     = errors.New("nome é obrigatório")
	ErrInvalidPrice     = errors.New("preço de venda deve ser maior que zero")
	ErrCategoryRequired = errors.New("categoria é obrigatória")
	ErrCategoryNotFound = errors.New("categoria não encontrada")
	ErrProductNotFound  = errors.New("produto não encontrado")
	ErrCategoryInUse    = errors.New("categoria possui produtos vinculados")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// CatalogError é um erro com contexto adicional para o catálogo
type CatalogError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError cria um novo CatalogError
func NewCatalogError(err error, code string, details string) *CatalogError {
	return &CatalogError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
