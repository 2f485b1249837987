package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/retail-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/retail-manager-api/internal/domain"
)

const paymentsTable = "payments"

type PaymentRepository interface {
	UpdateStatus(paymentID int, status domain.PaymentStatus) error
	GetByID(paymentID int) (*domain.Payment, error)
}

type paymentRepository struct {
	conn *postgres.Connection
}

func NewPaymentRepository(conn *postgres.Connection) PaymentRepository {
	return &paymentRepository{
		conn: conn,
	}
}

func (r *paymentRepository) UpdateStatus(paymentID int, status domain.PaymentStatus) error {
	query, args, err := squirrel.
		Update(paymentsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": paymentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar status do pagamento")
	}

	return nil
}

func (r *paymentRepository) GetByID(paymentID int) (*domain.Payment, error) {
	query, args, err := squirrel.
		Select("id", "user_id", "amount", "method", "status", "transaction_id", "created_at", "updated_at").
		From(paymentsTable).
		Where(squirrel.Eq{"id": paymentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var payment domain.Payment
	err = r.conn.QueryRow(query, args...).Scan(
		&payment.ID,
		&payment.UserID,
		&payment.Amount,
		&payment.Method,
		&payment.Status,
		&payment.TransactionID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar pagamento")
	}

	return &payment, nil
}
