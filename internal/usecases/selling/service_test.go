package selling

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

type sellingMocks struct {
	sale     *mocks.MockSaleRepository
	payment  *mocks.MockPaymentRepository
	product  *mocks.MockProductRepository
	lineItem *mocks.MockSaleLineItemRepository
}

func newTestSellingService(t *testing.T) (SellingService, *sellingMocks) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &sellingMocks{
		sale:     mocks.NewMockSaleRepository(ctrl),
		payment:  mocks.NewMockPaymentRepository(ctrl),
		product:  mocks.NewMockProductRepository(ctrl),
		lineItem: mocks.NewMockSaleLineItemRepository(ctrl),
	}

	service := NewService(m.sale, m.payment, m.product, m.lineItem)
	return service, m
}

func activeProduct(id int, name string, price float64) *domain.Product {
	return &domain.Product{
		ID:        id,
		Name:      name,
		SalePrice: decimal.NewFromFloat(price),
		Active:    true,
	}
}

func TestSellingService_Checkout(t *testing.T) {
	tests := []struct {
		name     string
		userID   int
		request  *CheckoutRequest
		setup    func(m *sellingMocks)
		wantErr  error
		validate func(t *testing.T, sale *domain.Sale)
	}{
		{
			name:    "Carrinho vazio - erro",
			userID:  10,
			request: &CheckoutRequest{PaymentMethod: domain.PaymentMethodCash},
			setup:   func(m *sellingMocks) {},
			wantErr: ErrEmptyCart,
		},
		{
			name:   "Método de pagamento desconhecido - erro",
			userID: 10,
			request: &CheckoutRequest{
				Items:         []CartItem{{ProductID: 1, Quantity: 1}},
				PaymentMethod: "bitcoin",
			},
			setup:   func(m *sellingMocks) {},
			wantErr: ErrInvalidPaymentMethod,
		},
		{
			name:   "Quantidade zero - erro",
			userID: 10,
			request: &CheckoutRequest{
				Items:         []CartItem{{ProductID: 1, Quantity: 0}},
				PaymentMethod: domain.PaymentMethodCash,
			},
			setup:   func(m *sellingMocks) {},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:   "Produto inativo - erro",
			userID: 10,
			request: &CheckoutRequest{
				Items:         []CartItem{{ProductID: 5, Quantity: 1}},
				PaymentMethod: domain.PaymentMethodCash,
			},
			setup: func(m *sellingMocks) {
				inactive := activeProduct(5, "Monitor LG UltraWide 34\"", 499.99)
				inactive.Active = false
				m.product.EXPECT().GetByID(5).Return(inactive, nil)
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name:   "Produto inexistente - erro",
			userID: 10,
			request: &CheckoutRequest{
				Items:         []CartItem{{ProductID: 99, Quantity: 1}},
				PaymentMethod: domain.PaymentMethodCash,
			},
			setup: func(m *sellingMocks) {
				m.product.EXPECT().GetByID(99).Return(nil, nil)
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name:   "Pagamento em dinheiro - venda já sai concluída",
			userID: 10,
			request: &CheckoutRequest{
				Items: []CartItem{
					{ProductID: 1, Quantity: 2},
					{ProductID: 2, Quantity: 1},
				},
				PaymentMethod: domain.PaymentMethodCash,
			},
			setup: func(m *sellingMocks) {
				m.product.EXPECT().GetByID(1).Return(activeProduct(1, "Parlante JBL Charge 5", 179.99), nil)
				m.product.EXPECT().GetByID(2).Return(activeProduct(2, "Audífonos Sony WH-1000XM5", 349.99), nil)

				m.sale.EXPECT().
					CreateFromCart(gomock.Any(), gomock.Any()).
					DoAndReturn(func(sale *domain.Sale, payment *domain.Payment) (*domain.Sale, error) {
						// Total exato: 2 x 179.99 + 349.99 = 709.97
						assert.Equal(t, "709.97", sale.Total.String())
						assert.Equal(t, domain.SaleStatusCompleted, sale.Status)
						assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
						assert.Equal(t, "709.97", payment.Amount.String())
						require.NotNil(t, payment.TransactionID)

						sale.ID = 77
						return sale, nil
					})
			},
			validate: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, 77, sale.ID)
				require.Len(t, sale.Items, 2)

				// Nome e preço capturados no momento da compra
				assert.Equal(t, "Parlante JBL Charge 5", sale.Items[0].ProductName)
				assert.Equal(t, "179.99", sale.Items[0].UnitPrice.String())
				assert.Equal(t, 2, sale.Items[0].Quantity)
				assert.Equal(t, "359.98", sale.Items[0].Subtotal().String())
			},
		},
		{
			name:   "Pagamento via paypal - venda fica em processamento",
			userID: 10,
			request: &CheckoutRequest{
				Items:         []CartItem{{ProductID: 3, Quantity: 1}},
				PaymentMethod: domain.PaymentMethodPaypal,
			},
			setup: func(m *sellingMocks) {
				m.product.EXPECT().GetByID(3).Return(activeProduct(3, "iPhone 15 Pro Max", 1299.99), nil)

				m.sale.EXPECT().
					CreateFromCart(gomock.Any(), gomock.Any()).
					DoAndReturn(func(sale *domain.Sale, payment *domain.Payment) (*domain.Sale, error) {
						assert.Equal(t, domain.SaleStatusProcessing, sale.Status)
						assert.Equal(t, domain.PaymentStatusPending, payment.Status)
						return sale, nil
					})
			},
			validate: func(t *testing.T, sale *domain.Sale) {
				assert.Equal(t, domain.SaleStatusProcessing, sale.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestSellingService(t)
			tt.setup(m)

			sale, err := service.Checkout(tt.userID, tt.request)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var saleErr *SaleError
				assert.ErrorAs(t, err, &saleErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, sale)
		})
	}
}

func TestSellingService_GetSale(t *testing.T) {
	t.Run("Venda encontrada - itens anexados", func(t *testing.T) {
		service, m := newTestSellingService(t)

		userID := 10
		m.sale.EXPECT().GetByID(42).Return(&domain.Sale{ID: 42, UserID: &userID}, nil)
		m.lineItem.EXPECT().ListBySale(42).Return([]*domain.SaleLineItem{
			{ProductName: "Laptop Dell XPS 13", UnitPrice: decimal.NewFromFloat(1399.99), Quantity: 1},
		}, nil)

		sale, err := service.GetSale(42)

		require.NoError(t, err)
		require.Len(t, sale.Items, 1)
		assert.Equal(t, "Laptop Dell XPS 13", sale.Items[0].ProductName)
	})

	t.Run("Venda inexistente - erro", func(t *testing.T) {
		service, m := newTestSellingService(t)

		m.sale.EXPECT().GetByID(42).Return(nil, nil)

		_, err := service.GetSale(42)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSaleNotFound)
	})
}

func TestSellingService_ConfirmPayment(t *testing.T) {
	paymentID := 8

	t.Run("Venda em processamento - pagamento e venda concluídos", func(t *testing.T) {
		service, m := newTestSellingService(t)

		m.sale.EXPECT().GetByID(42).Return(&domain.Sale{
			ID:        42,
			PaymentID: &paymentID,
			Status:    domain.SaleStatusProcessing,
		}, nil)
		m.payment.EXPECT().UpdateStatus(paymentID, domain.PaymentStatusCompleted).Return(nil)
		m.sale.EXPECT().Complete(42).Return(nil)

		require.NoError(t, service.ConfirmPayment(42))
	})

	t.Run("Venda já concluída - erro", func(t *testing.T) {
		service, m := newTestSellingService(t)

		m.sale.EXPECT().GetByID(42).Return(&domain.Sale{
			ID:        42,
			PaymentID: &paymentID,
			Status:    domain.SaleStatusCompleted,
		}, nil)

		err := service.ConfirmPayment(42)

		require.Error(t, err)
	})

	t.Run("Venda inexistente - erro", func(t *testing.T) {
		service, m := newTestSellingService(t)

		m.sale.EXPECT().GetByID(42).Return(nil, nil)

		err := service.ConfirmPayment(42)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSaleNotFound)
	})
}
