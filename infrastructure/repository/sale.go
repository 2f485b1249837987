package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/retail-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/retail-manager-api/internal/domain"
)

const salesTable = "sales"

type SaleRepository interface {
	CreateFromCart(sale *domain.Sale, payment *domain.Payment) (*domain.Sale, error)
	GetByID(saleID int) (*domain.Sale, error)
	ListByUser(userID int) ([]*domain.Sale, error)
	FindStaleProcessing(before time.Time) ([]*domain.Sale, error)
	Complete(saleID int) error
	Cancel(saleID int) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// CreateFromCart insere pagamento, venda e itens em uma única transação.
// Os itens devem vir anexados em sale.Items com nome e preço já
// capturados do catálogo.
func (r *saleRepository) CreateFromCart(sale *domain.Sale, payment *domain.Payment) (*domain.Sale, error) {
	err := r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		paymentQuery, paymentArgs, err := squirrel.
			Insert(paymentsTable).
			Columns("user_id", "amount", "method", "status", "transaction_id").
			Values(payment.UserID, payment.Amount, payment.Method, payment.Status, payment.TransactionID).
			Suffix("RETURNING id, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query de pagamento")
		}

		err = tx.QueryRow(paymentQuery, paymentArgs...).Scan(
			&payment.ID,
			&payment.CreatedAt,
			&payment.UpdatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "erro ao inserir pagamento")
		}

		sale.PaymentID = &payment.ID

		saleQuery, saleArgs, err := squirrel.
			Insert(salesTable).
			Columns("user_id", "payment_id", "total", "status").
			Values(sale.UserID, sale.PaymentID, sale.Total, sale.Status).
			Suffix("RETURNING id, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query de venda")
		}

		err = tx.QueryRow(saleQuery, saleArgs...).Scan(
			&sale.ID,
			&sale.CreatedAt,
			&sale.UpdatedAt,
		)
		if err != nil {
			return errors.Wrap(err, "erro ao inserir venda")
		}

		itemsBuilder := squirrel.
			Insert(saleLineItemsTable).
			Columns("sale_id", "product_id", "product_name", "unit_price", "quantity").
			PlaceholderFormat(squirrel.Dollar)

		for _, item := range sale.Items {
			item.SaleID = sale.ID
			itemsBuilder = itemsBuilder.Values(
				item.SaleID,
				item.ProductID,
				item.ProductName,
				item.UnitPrice,
				item.Quantity,
			)
		}

		itemsQuery, itemsArgs, err := itemsBuilder.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query de itens")
		}

		if _, err := tx.Exec(itemsQuery, itemsArgs...); err != nil {
			return errors.Wrap(err, "erro ao inserir itens da venda")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

func (r *saleRepository) GetByID(saleID int) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "payment_id", "total", "status", "created_at", "updated_at").
		From(salesTable).
		Where(squirrel.Eq{"id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var sale domain.Sale
	err = r.conn.QueryRow(query, args...).Scan(
		&sale.ID,
		&sale.UserID,
		&sale.PaymentID,
		&sale.Total,
		&sale.Status,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar venda")
	}

	return &sale, nil
}

func (r *saleRepository) ListByUser(userID int) ([]*domain.Sale, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "payment_id", "total", "status", "created_at", "updated_at").
		From(salesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	return r.querySales(query, args...)
}

// FindStaleProcessing retorna vendas presas em PROCESSING cujo pagamento
// continua pendente e que foram criadas antes do instante informado
func (r *saleRepository) FindStaleProcessing(before time.Time) ([]*domain.Sale, error) {
	query, args, err := squirrel.
		Select("s.id", "s.user_id", "s.payment_id", "s.total", "s.status", "s.created_at", "s.updated_at").
		From(salesTable + " s").
		Join(paymentsTable + " p ON p.id = s.payment_id").
		Where(squirrel.Eq{"s.status": domain.SaleStatusProcessing}).
		Where(squirrel.Eq{"p.status": domain.PaymentStatusPending}).
		Where(squirrel.Lt{"s.created_at": before}).
		OrderBy("s.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	return r.querySales(query, args...)
}

// Complete marca a venda como concluída após a confirmação do pagamento
func (r *saleRepository) Complete(saleID int) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("status", domain.SaleStatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "erro ao concluir venda")
	}

	return nil
}

// Cancel marca a venda e o pagamento associado como cancelados
func (r *saleRepository) Cancel(saleID int) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		saleQuery, saleArgs, err := squirrel.
			Update(salesTable).
			Set("status", domain.SaleStatusCancelled).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": saleID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if _, err := tx.Exec(saleQuery, saleArgs...); err != nil {
			return errors.Wrap(err, "erro ao cancelar venda")
		}

		paymentQuery := `
			UPDATE payments SET status = $1, updated_at = NOW()
			WHERE id = (SELECT payment_id FROM sales WHERE id = $2)
		`
		if _, err := tx.Exec(paymentQuery, domain.PaymentStatusCancelled, saleID); err != nil {
			return errors.Wrap(err, "erro ao cancelar pagamento da venda")
		}

		return nil
	})
}

func (r *saleRepository) querySales(query string, args ...interface{}) ([]*domain.Sale, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.UserID,
			&sale.PaymentID,
			&sale.Total,
			&sale.Status,
			&sale.CreatedAt,
			&sale.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		sales = append(sales, &sale)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return sales, nil
}
