package repository

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/retail-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/retail-manager-api/internal/domain"
)

const saleLineItemsTable = "sale_line_items"

const (
	revenueExpr   = "SUM(sli.unit_price * sli.quantity)"
	unitCountExpr = "SUM(sli.quantity)"
)

type SaleLineItemRepository interface {
	ListBySale(saleID int) ([]*domain.SaleLineItem, error)
	AggregateMonthly(spec domain.FilterSpec) ([]domain.MonthlyObservation, error)
	ReportByProduct(filter domain.ReportFilter) ([]*domain.ReportRow, error)
	ReportByClient(filter domain.ReportFilter) ([]*domain.ReportRow, error)
	ReportByCategory(filter domain.ReportFilter) ([]*domain.ReportRow, error)
	ReportTotal(filter domain.ReportFilter) (decimal.Decimal, error)
}

type saleLineItemRepository struct {
	conn *postgres.Connection
}

func NewSaleLineItemRepository(conn *postgres.Connection) SaleLineItemRepository {
	return &saleLineItemRepository{
		conn: conn,
	}
}

func (r *saleLineItemRepository) ListBySale(saleID int) ([]*domain.SaleLineItem, error) {
	query, args, err := squirrel.
		Select("id", "sale_id", "product_id", "product_name", "unit_price", "quantity", "created_at").
		From(saleLineItemsTable).
		Where(squirrel.Eq{"sale_id": saleID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	items := make([]*domain.SaleLineItem, 0)
	for rows.Next() {
		var item domain.SaleLineItem
		if err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear item de venda")
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return items, nil
}

// AggregateMonthly agrega itens de vendas COMPLETED por mês-calendário da
// criação da venda (não do item), aplicando os filtros de categoria,
// produto e período do FilterSpec. A soma de receita é feita inteiramente
// no banco sobre colunas DECIMAL, sem passar por ponto flutuante.
func (r *saleLineItemRepository) AggregateMonthly(spec domain.FilterSpec) ([]domain.MonthlyObservation, error) {
	valueExpr := revenueExpr
	if spec.Metric == domain.MetricUnitCount {
		valueExpr = unitCountExpr
	}

	queryBuilder := squirrel.
		Select("date_trunc('month', s.created_at) AS month", valueExpr+" AS value").
		From(saleLineItemsTable + " sli").
		Join(salesTable + " s ON s.id = sli.sale_id").
		Where(squirrel.Eq{"s.status": domain.SaleStatusCompleted}).
		GroupBy("date_trunc('month', s.created_at)").
		OrderBy("month ASC").
		PlaceholderFormat(squirrel.Dollar)

	if spec.CategoryID != nil {
		queryBuilder = queryBuilder.
			Join(productsTable + " p ON p.id = sli.product_id").
			Where(squirrel.Eq{"p.category_id": *spec.CategoryID})
	}

	if spec.ProductID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"sli.product_id": *spec.ProductID})
	}

	if spec.StartDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"s.created_at": *spec.StartDate})
	}

	if spec.EndDate != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"s.created_at": *spec.EndDate})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	observations := make([]domain.MonthlyObservation, 0)
	for rows.Next() {
		var month time.Time
		var value decimal.Decimal
		if err := rows.Scan(&month, &value); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear observação mensal")
		}

		observations = append(observations, domain.MonthlyObservation{
			Month: time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC),
			Value: value,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return observations, nil
}

func (r *saleLineItemRepository) ReportByProduct(filter domain.ReportFilter) ([]*domain.ReportRow, error) {
	queryBuilder := r.reportBase(filter).
		Column("sli.product_name AS label").
		Column(unitCountExpr + " AS quantity").
		Column(revenueExpr + " AS total").
		GroupBy("sli.product_name").
		OrderBy("total DESC")

	return r.queryReportRows(queryBuilder)
}

func (r *saleLineItemRepository) ReportByClient(filter domain.ReportFilter) ([]*domain.ReportRow, error) {
	queryBuilder := r.reportBase(filter).
		Column("u.email AS label").
		Column("COUNT(DISTINCT s.id) AS quantity").
		Column(revenueExpr + " AS total").
		Join(usersTable + " u ON u.id = s.user_id").
		GroupBy("u.email").
		OrderBy("total DESC")

	return r.queryReportRows(queryBuilder)
}

func (r *saleLineItemRepository) ReportByCategory(filter domain.ReportFilter) ([]*domain.ReportRow, error) {
	queryBuilder := r.reportBase(filter).
		Column("c.name AS label").
		Column(unitCountExpr + " AS quantity").
		Column(revenueExpr + " AS total").
		Join(productsTable + " p ON p.id = sli.product_id").
		Join(categoriesTable + " c ON c.id = p.category_id").
		GroupBy("c.name").
		OrderBy("total DESC")

	return r.queryReportRows(queryBuilder)
}

func (r *saleLineItemRepository) ReportTotal(filter domain.ReportFilter) (decimal.Decimal, error) {
	query, args, err := r.reportBase(filter).
		Column("COALESCE(" + revenueExpr + ", 0) AS total").
		ToSql()
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "erro ao construir a query")
	}

	var total decimal.Decimal
	if err := r.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return decimal.Zero, errors.Wrap(err, "erro ao calcular total do relatório")
	}

	return total, nil
}

// reportBase monta o FROM/WHERE comum a todos os relatórios: itens de
// vendas COMPLETED dentro do período, com os filtros opcionais
func (r *saleLineItemRepository) reportBase(filter domain.ReportFilter) squirrel.SelectBuilder {
	queryBuilder := squirrel.
		Select().
		From(saleLineItemsTable + " sli").
		Join(salesTable + " s ON s.id = sli.sale_id").
		Where(squirrel.Eq{"s.status": domain.SaleStatusCompleted}).
		Where(squirrel.GtOrEq{"s.created_at": filter.StartDate}).
		Where(squirrel.LtOrEq{"s.created_at": filter.EndDate}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.CategoryID != nil {
		queryBuilder = queryBuilder.Where(
			squirrel.Expr("sli.product_id IN (SELECT id FROM products WHERE category_id = ?)", *filter.CategoryID),
		)
	}

	if filter.ProductID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"sli.product_id": *filter.ProductID})
	}

	if filter.ProductName != "" {
		queryBuilder = queryBuilder.Where(squirrel.ILike{"sli.product_name": "%" + filter.ProductName + "%"})
	}

	if filter.ClientUsername != "" {
		queryBuilder = queryBuilder.Where(
			squirrel.Expr("s.user_id IN (SELECT id FROM users WHERE email = ?)", filter.ClientUsername),
		)
	}

	return queryBuilder
}

func (r *saleLineItemRepository) queryReportRows(queryBuilder squirrel.SelectBuilder) ([]*domain.ReportRow, error) {
	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	reportRows := make([]*domain.ReportRow, 0)
	for rows.Next() {
		var row domain.ReportRow
		if err := rows.Scan(&row.Label, &row.Quantity, &row.Total); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear linha do relatório")
		}
		reportRows = append(reportRows, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return reportRows, nil
}
