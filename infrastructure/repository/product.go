package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/retail-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/retail-manager-api/internal/domain"
)

const productsTable = "products"

type ProductRepository interface {
	Create(product *domain.Product) (*domain.Product, error)
	Update(product *domain.Product) error
	Deactivate(productID int) error
	GetByID(productID int) (*domain.Product, error)
	List(onlyActive bool) ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) Create(product *domain.Product) (*domain.Product, error) {
	query, args, err := squirrel.
		Insert(productsTable).
		Columns("name", "description", "sale_price", "category_id", "active", "featured").
		Values(
			product.Name,
			product.Description,
			product.SalePrice,
			product.CategoryID,
			product.Active,
			product.Featured,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRow(query, args...).Scan(
		&product.ID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inserir produto")
	}

	return product, nil
}

func (r *productRepository) Update(product *domain.Product) error {
	query, args, err := squirrel.
		Update(productsTable).
		Set("name", product.Name).
		Set("description", product.Description).
		Set("sale_price", product.SalePrice).
		Set("category_id", product.CategoryID).
		Set("active", product.Active).
		Set("featured", product.Featured).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar produto")
	}

	return nil
}

// Deactivate marca o produto como inativo. Produtos nunca são removidos
// fisicamente porque os itens de venda mantêm a referência.
func (r *productRepository) Deactivate(productID int) error {
	query, args, err := squirrel.
		Update(productsTable).
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao desativar produto")
	}

	return nil
}

func (r *productRepository) GetByID(productID int) (*domain.Product, error) {
	query, args, err := squirrel.
		Select("id", "name", "description", "sale_price", "category_id", "active", "featured", "created_at", "updated_at").
		From(productsTable).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	product, err := r.scanProduct(r.conn.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar produto")
	}

	return product, nil
}

func (r *productRepository) List(onlyActive bool) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select("id", "name", "description", "sale_price", "category_id", "active", "featured", "created_at", "updated_at").
		From(productsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"active": true})
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

	products := make([]*domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.SalePrice,
			&product.CategoryID,
			&product.Active,
			&product.Featured,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear produto")
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return products, nil
}

func (r *productRepository) scanProduct(row *sql.Row) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.SalePrice,
		&product.CategoryID,
		&product.Active,
		&product.Featured,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &product, nil
}
