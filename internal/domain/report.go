package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agrupamentos suportados pelo gerador de relatórios
const (
	ReportGroupByProduct  = "product"
	ReportGroupByClient   = "client"
	ReportGroupByCategory = "category"
)

// ReportFilter descreve um relatório de vendas sob demanda. Diferente do
// FilterSpec do dashboard, o intervalo de datas é obrigatório.
type ReportFilter struct {
	StartDate      time.Time
	EndDate        time.Time
	CategoryID     *int
	ProductID      *int
	ProductName    string
	ClientUsername string
	GroupBy        string
}

// ReportRow é uma linha de relatório agrupado. Quantity é a quantidade de
// unidades vendidas, ou o número de compras quando agrupado por cliente.
type ReportRow struct {
	Label    string          `json:"label"`
	Quantity int64           `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

type SalesReport struct {
	Title   string           `json:"title"`
	GroupBy string           `json:"group_by,omitempty"`
	Headers []string         `json:"headers"`
	Rows    []*ReportRow     `json:"rows,omitempty"`
	Total   *decimal.Decimal `json:"total,omitempty"`
}
