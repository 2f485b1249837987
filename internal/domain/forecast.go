package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Metric define o alvo da agregação mensal de vendas
type Metric string

const (
	MetricRevenue   Metric = "revenue"    // soma de preço unitário x quantidade
	MetricUnitCount Metric = "unit_count" // soma das quantidades
)

// FilterAll é o valor sentinela enviado pelo frontend para indicar
// "sem filtro nesta dimensão"
const FilterAll = "all"

// FilterSpec é o descritor de consulta validado usado pelo agregador
// histórico e pelo motor de previsão. Campos nil significam "sem restrição".
// Não é persistido; é construído a cada requisição.
type FilterSpec struct {
	CategoryID *int
	ProductID  *int
	Metric     Metric
	StartDate  *time.Time
	EndDate    *time.Time
}

// MonthlyObservation é o valor agregado de um mês-calendário (timestamp
// truncado para o início do mês). Derivado, nunca persistido.
type MonthlyObservation struct {
	Month time.Time
	Value decimal.Decimal
}

// SeriesPoint é o formato uniforme de saída para séries históricas e
// previstas: data ISO fixada no primeiro dia do mês e valor numérico.
// O valor usa json.Number para preservar a representação decimal exata
// dos totais históricos.
type SeriesPoint struct {
	Date  string      `json:"date"`
	Value json.Number `json:"value"`
}
