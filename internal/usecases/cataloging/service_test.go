package cataloging

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type catalogMocks struct {
	category *mocks.MockCategoryRepository
	product  *mocks.MockProductRepository
}

func newTestCatalogService(t *testing.T) (CatalogService, *catalogMocks) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &catalogMocks{
		category: mocks.NewMockCategoryRepository(ctrl),
		product:  mocks.NewMockProductRepository(ctrl),
	}

	return NewService(m.category, m.product), m
}

func TestCatalogService_CreateCategory(t *testing.T) {
	t.Run("Categoria válida - criada", func(t *testing.T) {
		service, m := newTestCatalogService(t)

		m.category.EXPECT().
			Create(gomock.Any()).
			DoAndReturn(func(category *domain.Category) (*domain.Category, error) {
				category.ID = 1
				return category, nil
			})

		created, err := service.CreateCategory(&domain.Category{Name: "Televisores"})

		require.NoError(t, err)
		assert.Equal(t, 1, created.ID)
	})

	t.Run("Nome vazio - erro", func(t *testing.T) {
		service, _ := newTestCatalogService(t)

		_, err := service.CreateCategory(&domain.Category{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(m *catalogMocks)
		wantErr error
	}{
		{
			name: "Categoria sem produtos - removida",
			setup: func(m *catalogMocks) {
				m.category.EXPECT().GetByID(3).Return(&domain.Category{ID: 3, Name: "Audio"}, nil)
				m.product.EXPECT().List(false).Return([]*domain.Product{
					{ID: 1, Name: "Smart TV Samsung 55\" 4K UHD", CategoryID: 1},
				}, nil)
				m.category.EXPECT().Delete(3).Return(nil)
			},
		},
		{
			name: "Categoria com produto inativo - recusada",
			setup: func(m *catalogMocks) {
				m.category.EXPECT().GetByID(3).Return(&domain.Category{ID: 3, Name: "Audio"}, nil)
				m.product.EXPECT().List(false).Return([]*domain.Product{
					{ID: 9, Name: "Parlante JBL Charge 5", CategoryID: 3, Active: false},
				}, nil)
			},
			wantErr: ErrCategoryInUse,
		},
		{
			name: "Categoria inexistente - erro",
			setup: func(m *catalogMocks) {
				m.category.EXPECT().GetByID(3).Return(nil, nil)
			},
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestCatalogService(t)
			tt.setup(m)

			err := service.DeleteCategory(3)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	validProduct := func() *domain.Product {
		return &domain.Product{
			Name:       "Audífonos Sony WH-1000XM5",
			SalePrice:  decimal.NewFromFloat(349.99),
			CategoryID: 4,
		}
	}

	tests := []struct {
		name    string
		product *domain.Product
		setup   func(m *catalogMocks)
		wantErr error
	}{
		{
			name:    "Produto válido - criado ativo",
			product: validProduct(),
			setup: func(m *catalogMocks) {
				m.category.EXPECT().GetByID(4).Return(&domain.Category{ID: 4, Name: "Audio"}, nil)
				m.product.EXPECT().
					Create(gomock.Any()).
					DoAndReturn(func(product *domain.Product) (*domain.Product, error) {
						assert.True(t, product.Active)
						product.ID = 6
						return product, nil
					})
			},
		},
		{
			name: "Sem nome - erro",
			product: &domain.Product{
				SalePrice:  decimal.NewFromFloat(349.99),
				CategoryID: 4,
			},
			setup:   func(m *catalogMocks) {},
			wantErr: ErrNameRequired,
		},
		{
			name: "Preço zero - erro",
			product: &domain.Product{
				Name:       "Audífonos Sony WH-1000XM5",
				SalePrice:  decimal.Zero,
				CategoryID: 4,
			},
			setup:   func(m *catalogMocks) {},
			wantErr: ErrInvalidPrice,
		},
		{
			name: "Preço negativo - erro",
			product: &domain.Product{
				Name:       "Audífonos Sony WH-1000XM5",
				SalePrice:  decimal.NewFromFloat(-10),
				CategoryID: 4,
			},
			setup:   func(m *catalogMocks) {},
			wantErr: ErrInvalidPrice,
		},
		{
			name: "Sem categoria - erro",
			product: &domain.Product{
				Name:      "Audífonos Sony WH-1000XM5",
				SalePrice: decimal.NewFromFloat(349.99),
			},
			setup:   func(m *catalogMocks) {},
			wantErr: ErrCategoryRequired,
		},
		{
			name:    "Categoria inexistente - erro",
			product: validProduct(),
			setup: func(m *catalogMocks) {
				m.category.EXPECT().GetByID(4).Return(nil, nil)
			},
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestCatalogService(t)
			tt.setup(m)

			created, err := service.CreateProduct(tt.product)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var catalogErr *CatalogError
				assert.ErrorAs(t, err, &catalogErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 6, created.ID)
		})
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	t.Run("Atualização parcial - só os campos enviados mudam", func(t *testing.T) {
		service, m := newTestCatalogService(t)

		existing := &domain.Product{
			ID:         6,
			Name:       "Audífonos Sony WH-1000XM5",
			SalePrice:  decimal.NewFromFloat(349.99),
			CategoryID: 4,
			Active:     true,
		}

		m.product.EXPECT().GetByID(6).Return(existing, nil)
		m.category.EXPECT().GetByID(4).Return(&domain.Category{ID: 4, Name: "Audio"}, nil)
		m.product.EXPECT().Update(gomock.Any()).Return(nil)

		newPrice := decimal.NewFromFloat(299.99)
		updated, err := service.UpdateProduct(&domain.UpdateProductRequest{
			ID:        6,
			SalePrice: &newPrice,
		})

		require.NoError(t, err)
		assert.Equal(t, "299.99", updated.SalePrice.String())
		assert.Equal(t, "Audífonos Sony WH-1000XM5", updated.Name)
		assert.True(t, updated.Active)
	})

	t.Run("Produto inexistente - erro", func(t *testing.T) {
		service, m := newTestCatalogService(t)

		m.product.EXPECT().GetByID(6).Return(nil, nil)

		_, err := service.UpdateProduct(&domain.UpdateProductRequest{ID: 6})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestCatalogService_DeactivateProduct(t *testing.T) {
	t.Run("Produto existente - desativado", func(t *testing.T) {
		service, m := newTestCatalogService(t)

		m.product.EXPECT().GetByID(6).Return(&domain.Product{ID: 6, Active: true}, nil)
		m.product.EXPECT().Deactivate(6).Return(nil)

		require.NoError(t, service.DeactivateProduct(6))
	})

	t.Run("Produto inexistente - erro", func(t *testing.T) {
		service, m := newTestCatalogService(t)

		m.product.EXPECT().GetByID(6).Return(nil, nil)

		err := service.DeactivateProduct(6)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
