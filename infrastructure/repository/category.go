package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/retail-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/retail-manager-api/internal/domain"
)

const categoriesTable = "categories"

type CategoryRepository interface {
	Create(category *domain.Category) (*domain.Category, error)
	Update(category *domain.Category) error
	Delete(categoryID int) error
	GetByID(categoryID int) (*domain.Category, error)
	List() ([]*domain.Category, error)
}

type categoryRepository struct {
	conn *postgres.Connection
}

func NewCategoryRepository(conn *postgres.Connection) CategoryRepository {
	return &categoryRepository{
		conn: conn,
	}
}

func (r *categoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	query, args, err := squirrel.
		Insert(categoriesTable).
		Columns("name", "description").
		Values(category.Name, category.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRow(query, args...).Scan(&category.ID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inserir categoria")
	}

	return category, nil
}

func (r *categoryRepository) Update(category *domain.Category) error {
	query, args, err := squirrel.
		Update(categoriesTable).
		Set("name", category.Name).
		Set("description", category.Description).
		Where(squirrel.Eq{"id": category.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar categoria")
	}

	return nil
}

func (r *categoryRepository) Delete(categoryID int) error {
	query, args, err := squirrel.
		Delete(categoriesTable).
		Where(squirrel.Eq{"id": categoryID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao remover categoria")
	}

	return nil
}

func (r *categoryRepository) GetByID(categoryID int) (*domain.Category, error) {
	query, args, err := squirrel.
		Select("id", "name", "description").
		From(categoriesTable).
		Where(squirrel.Eq{"id": categoryID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var category domain.Category
	err = r.conn.QueryRow(query, args...).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar categoria")
	}

	return &category, nil
}

func (r *categoryRepository) List() ([]*domain.Category, error) {
	query, args, err := squirrel.
		Select("id", "name", "description").
		From(categoriesTable).
		OrderBy("name ASC").
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

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear categoria")
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return categories, nil
}
