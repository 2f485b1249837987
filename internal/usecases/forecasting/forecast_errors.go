package forecasting

import (
	"errors"
	"fmt"
)

// Erros do pipeline de previsão de vendas
var (
	// Erros de validação de filtros, detectados antes de consultar o banco
	ErrInvalidMetric    = errors.New("métrica de agregação inválida")
	ErrInvalidDateRange = errors.New("intervalo de datas inválido")

	// ErrNoMatchingData indica zero observações mensais para os filtros.
	// É distinto de ErrInsufficientHistory (uma observação): ambos
	// impedem a previsão, mas o diagnóstico para o caller é diferente.
	ErrNoMatchingData = errors.New("nenhuma venda encontrada para os filtros informados")

	// ErrInsufficientHistory indica menos de dois meses de histórico.
	// Não adianta repetir a chamada: mais histórico não pode ser
	// materializado sob demanda.
	ErrInsufficientHistory = errors.New("histórico mensal insuficiente para treinar o modelo")
)

// ForecastError carrega o contexto do erro para o caller poder logar:
// quantas observações foram encontradas e os detalhes do filtro
type ForecastError struct {
	Err          error
	Observations int
	Details      string
}

func (e *ForecastError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ForecastError) Unwrap() error {
	return e.Err
}

func NewForecastError(baseErr error, observations int, details string) *ForecastError {
	return &ForecastError{
		Err:          baseErr,
		Observations: observations,
		Details:      details,
	}
}
