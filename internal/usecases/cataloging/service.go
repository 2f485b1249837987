package cataloging

import (
	"github.com/vfg2006/retail-manager-api/infrastructure/repository"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
	"github.com/vfg2006/retail-manager-api/pkg/log"
)

// CatalogService gerencia categorias e produtos. Produtos nunca são
// removidos fisicamente: a desativação preserva as referências dos
// itens de venda já registrados.
type CatalogService interface {
	CreateCategory(category *domain.Category) (*domain.Category, error)
	UpdateCategory(category *domain.Category) error
	DeleteCategory(categoryID int) error
	ListCategories() ([]*domain.Category, error)

	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(request *domain.UpdateProductRequest) (*domain.Product, error)
	DeactivateProduct(productID int) error
	GetProduct(productID int) (*domain.Product, error)
	ListProducts(onlyActive bool) ([]*domain.Product, error)
}

type Service struct {
	categoryRepository repository.CategoryRepository
	productRepository  repository.ProductRepository
}

func NewService(
	categoryRepository repository.CategoryRepository,
	productRepository repository.ProductRepository,
) CatalogService {
	return &Service{
		categoryRepository: categoryRepository,
		productRepository:  productRepository,
	}
}

func (s *Service) CreateCategory(category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, NewCatalogError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da categoria é obrigatório")
	}

	created, err := s.categoryRepository.Create(category)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar categoria")
	}

	return created, nil
}

func (s *Service) UpdateCategory(category *domain.Category) error {
	if category.Name == "" {
		return NewCatalogError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da categoria é obrigatório")
	}

	existing, err := s.categoryRepository.GetByID(category.ID)
	if err != nil {
		return NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar categoria")
	}
	if existing == nil {
		return NewCatalogError(ErrCategoryNotFound, apiErrors.ErrCategoryNotFound, "")
	}

	return s.categoryRepository.Update(category)
}

func (s *Service) DeleteCategory(categoryID int) error {
	existing, err := s.categoryRepository.GetByID(categoryID)
	if err != nil {
		return NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar categoria")
	}
	if existing == nil {
		return NewCatalogError(ErrCategoryNotFound, apiErrors.ErrCategoryNotFound, "")
	}

	// Categorias com produtos (ativos ou não) não podem ser removidas
	products, err := s.productRepository.List(false)
	if err != nil {
		return NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar produtos da categoria")
	}
	for _, product := range products {
		if product.CategoryID == categoryID {
			return NewCatalogError(ErrCategoryInUse, apiErrors.ErrInvalidRequest, "Desvincule ou desative os produtos antes de remover a categoria")
		}
	}

	return s.categoryRepository.Delete(categoryID)
}

func (s *Service) ListCategories() ([]*domain.Category, error) {
	return s.categoryRepository.List()
}

func (s *Service) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	product.Active = true

	created, err := s.productRepository.Create(product)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar produto")
	}

	log.L.WithFields(log.Fields{
		"product_id": created.ID,
		"category":   created.CategoryID,
	}).Info("produto cadastrado")

	return created, nil
}

func (s *Service) UpdateProduct(request *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(request.ID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar produto")
	}
	if product == nil {
		return nil, NewCatalogError(ErrProductNotFound, apiErrors.ErrProductNotFound, "")
	}

	if request.Name != nil {
		product.Name = *request.Name
	}

	if request.Description != nil {
		product.Description = request.Description
	}

	if request.SalePrice != nil {
		product.SalePrice = *request.SalePrice
	}

	if request.CategoryID != nil {
		product.CategoryID = *request.CategoryID
	}

	if request.Active != nil {
		product.Active = *request.Active
	}

	if request.Featured != nil {
		product.Featured = *request.Featured
	}

	if err := s.validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepository.Update(product); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao atualizar produto")
	}

	return product, nil
}

func (s *Service) DeactivateProduct(productID int) error {
	product, err := s.productRepository.GetByID(productID)
	if err != nil {
		return NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar produto")
	}
	if product == nil {
		return NewCatalogError(ErrProductNotFound, apiErrors.ErrProductNotFound, "")
	}

	return s.productRepository.Deactivate(productID)
}

func (s *Service) GetProduct(productID int) (*domain.Product, error) {
	product, err := s.productRepository.GetByID(productID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar produto")
	}
	if product == nil {
		return nil, NewCatalogError(ErrProductNotFound, apiErrors.ErrProductNotFound, "")
	}

	return product, nil
}

func (s *Service) ListProducts(onlyActive bool) ([]*domain.Product, error) {
	return s.productRepository.List(onlyActive)
}

func (s *Service) validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return NewCatalogError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome do produto é obrigatório")
	}

	if !product.SalePrice.IsPositive() {
		return NewCatalogError(ErrInvalidPrice, apiErrors.ErrInvalidRequest, "")
	}

	if product.CategoryID == 0 {
		return NewCatalogError(ErrCategoryRequired, apiErrors.ErrMissingRequiredData, "")
	}

	category, err := s.categoryRepository.GetByID(product.CategoryID)
	if err != nil {
		return NewCatalogError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar categoria do produto")
	}
	if category == nil {
		return NewCatalogError(ErrCategoryNotFound, apiErrors.ErrCategoryNotFound, "")
	}

	return nil
}
