package selling

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
	"github.com/vfg2006/retail-manager-api/pkg/log"
	"github.com/vfg2006/retail-manager-api/pkg/utils"
)

// CartItem é uma linha do carrinho enviada no checkout
type CartItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CheckoutRequest é o pedido de fechamento de compra
type CheckoutRequest struct {
	Items         []CartItem           `json:"items"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
}

// SellingService fecha carrinhos em vendas e consulta o histórico do cliente
type SellingService interface {
	Checkout(userID int, request *CheckoutRequest) (*domain.Sale, error)
	GetSale(saleID int) (*domain.Sale, error)
	ListUserSales(userID int) ([]*domain.Sale, error)
	ConfirmPayment(saleID int) error
}

type Service struct {
	saleRepository     repository.SaleRepository
	paymentRepository  repository.PaymentRepository
	productRepository  repository.ProductRepository
	lineItemRepository repository.SaleLineItemRepository
}

func NewService(
	saleRepository repository.SaleRepository,
	paymentRepository repository.PaymentRepository,
	productRepository repository.ProductRepository,
	lineItemRepository repository.SaleLineItemRepository,
) SellingService {
	return &Service{
		saleRepository:     saleRepository,
		paymentRepository:  paymentRepository,
		productRepository:  productRepository,
		lineItemRepository: lineItemRepository,
	}
}

// Checkout valida o carrinho, captura nome e preço de cada produto no
// momento da compra e registra pagamento, venda e itens atomicamente.
// Pagamento em dinheiro confirma na hora; paypal fica pendente até o
// retorno do provedor.
func (s *Service) Checkout(userID int, request *CheckoutRequest) (*domain.Sale, error) {
	if len(request.Items) == 0 {
		return nil, NewSaleError(ErrEmptyCart, apiErrors.ErrInvalidRequest, "")
	}

	if !domain.ValidPaymentMethod(request.PaymentMethod) {
		return nil, NewSaleError(ErrInvalidPaymentMethod, apiErrors.ErrInvalidRequest, fmt.Sprintf("método %q não aceito", request.PaymentMethod))
	}

	total := decimal.Zero
	items := make([]*domain.SaleLineItem, 0, len(request.Items))

	for _, cartItem := range request.Items {
		if cartItem.Quantity <= 0 {
			return nil, NewProductSaleError(ErrInvalidQuantity, apiErrors.ErrInvalidRequest, cartItem.ProductID, "")
		}

		product, err := s.productRepository.GetByID(cartItem.ProductID)
		if err != nil {
			return nil, NewProductSaleError(err, apiErrors.ErrDatabaseOperation, cartItem.ProductID, "Erro ao consultar produto")
		}

		if product == nil || !product.Active {
			return nil, NewProductSaleError(ErrProductUnavailable, apiErrors.ErrProductNotFound, cartItem.ProductID, "")
		}

		productID := product.ID
		item := &domain.SaleLineItem{
			ProductID:   &productID,
			ProductName: product.Name,
			UnitPrice:   product.SalePrice,
			Quantity:    cartItem.Quantity,
		}

		total = total.Add(item.Subtotal())
		items = append(items, item)
	}

	transactionID, err := utils.GenerateID()
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador de transação")
	}

	payment := &domain.Payment{
		UserID:        userID,
		Amount:        total,
		Method:        request.PaymentMethod,
		Status:        domain.PaymentStatusPending,
		TransactionID: &transactionID,
	}

	sale := &domain.Sale{
		UserID: &userID,
		Total:  total,
		Status: domain.SaleStatusProcessing,
		Items:  items,
	}

	// Dinheiro é confirmado no balcão: não há retorno assíncrono a esperar
	if request.PaymentMethod == domain.PaymentMethodCash {
		payment.Status = domain.PaymentStatusCompleted
		sale.Status = domain.SaleStatusCompleted
	}

	sale, err = s.saleRepository.CreateFromCart(sale, payment)
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda")
	}

	log.L.WithFields(log.Fields{
		"sale_id":        sale.ID,
		"user_id":        userID,
		"total":          sale.Total.String(),
		"payment_method": request.PaymentMethod,
		"status":         sale.Status,
	}).Info("venda registrada")

	return sale, nil
}

func (s *Service) GetSale(saleID int) (*domain.Sale, error) {
	sale, err := s.saleRepository.GetByID(saleID)
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar venda")
	}
	if sale == nil {
		return nil, NewSaleError(ErrSaleNotFound, apiErrors.ErrSaleNotFound, "")
	}

	items, err := s.lineItemRepository.ListBySale(saleID)
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar itens da venda")
	}
	sale.Items = items

	return sale, nil
}

func (s *Service) ListUserSales(userID int) ([]*domain.Sale, error) {
	sales, err := s.saleRepository.ListByUser(userID)
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar vendas do usuário")
	}

	return sales, nil
}

// ConfirmPayment marca o pagamento de uma venda pendente como concluído
// e completa a venda. Usado no retorno do provedor de pagamento.
func (s *Service) ConfirmPayment(saleID int) error {
	sale, err := s.saleRepository.GetByID(saleID)
	if err != nil {
		return NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar venda")
	}
	if sale == nil {
		return NewSaleError(ErrSaleNotFound, apiErrors.ErrSaleNotFound, "")
	}

	if sale.Status != domain.SaleStatusProcessing || sale.PaymentID == nil {
		return NewSaleError(ErrSaleNotFound, apiErrors.ErrInvalidRequest, "Venda não está aguardando pagamento")
	}

	if err := s.paymentRepository.UpdateStatus(*sale.PaymentID, domain.PaymentStatusCompleted); err != nil {
		return NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao confirmar pagamento")
	}

	if err := s.saleRepository.Complete(saleID); err != nil {
		return NewSaleError(err, apiErrors.ErrDatabaseOperation, "Erro ao concluir venda")
	}

	return nil
}
