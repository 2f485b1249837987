package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/internal/usecases/selling"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
	"github.com/vfg2006/retail-manager-api/pkg/middleware"
)

// Checkout fecha o carrinho do usuário logado em uma venda
func Checkout(service selling.SellingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - Checkout")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req selling.CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		sale, err := service.Checkout(userClaims.UserID, &req)
		if err != nil {
			logrus.Error(err)
			handleSaleError(w, err, "Erro ao registrar venda")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(sale)
	}
}

// ListMySales lista as vendas do usuário logado, da mais recente para a
// mais antiga
func ListMySales(service selling.SellingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		sales, err := service.ListUserSales(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sales)
	}
}

// GetSale retorna uma venda com seus itens. Clientes só enxergam as
// próprias vendas; administradores e supervisores enxergam todas.
func GetSale(service selling.SellingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id, ok := pathID(w, r, "ID da venda")
		if !ok {
			return
		}

		sale, err := service.GetSale(id)
		if err != nil {
			logrus.Error(err)
			handleSaleError(w, err, "Erro ao buscar venda")
			return
		}

		if userClaims.UserRoleID == 3 && (sale.UserID == nil || *sale.UserID != userClaims.UserID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para ver esta venda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sale)
	}
}

// ConfirmSalePayment confirma o pagamento pendente de uma venda
func ConfirmSalePayment(service selling.SellingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ConfirmSalePayment")

		id, ok := pathID(w, r, "ID da venda")
		if !ok {
			return
		}

		if err := service.ConfirmPayment(id); err != nil {
			logrus.Error(err)
			handleSaleError(w, err, "Erro ao confirmar pagamento")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// handleSaleError traduz erros de venda para a resposta da API
func handleSaleError(w http.ResponseWriter, err error, fallback string) {
	var saleErr *selling.SaleError
	if errors.As(err, &saleErr) {
		message := saleErr.Details
		if message == "" {
			message = saleErr.Err.Error()
		}
		apiErrors.WriteError(w, saleErr.Code, message, nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, fallback, nil)
}
