package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de relatórios
var (
	// ErrMissingDateRange indica que o prompt não trouxe um intervalo de
	// datas reconhecível; relatórios sempre exigem um intervalo
	ErrMissingDateRange = errors.New("o prompt não especificou um intervalo de datas válido")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um novo ReportError
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
