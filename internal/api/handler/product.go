package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
)

// ListProducts lista os produtos do catálogo. Por padrão retorna apenas
// os ativos; ?include_inactive=true inclui os desativados.
func ListProducts(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("include_inactive") != "true"

		products, err := service.ListProducts(onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar produtos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(products)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetProduct retorna um produto por ID
func GetProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "ID do produto")
		if !ok {
			return
		}

		product, err := service.GetProduct(id)
		if err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao buscar produto")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(product)
	}
}

// CreateProduct cadastra um novo produto
func CreateProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateProduct")

		var product *domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		product, err := service.CreateProduct(product)
		if err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao criar produto")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(product)
	}
}

// UpdateProduct atualiza campos de um produto existente
func UpdateProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateProduct")

		id, ok := pathID(w, r, "ID do produto")
		if !ok {
			return
		}

		var updateReq domain.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		updateReq.ID = id

		product, err := service.UpdateProduct(&updateReq)
		if err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao atualizar produto")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(product)
	}
}

// DeactivateProduct desativa um produto sem removê-lo, preservando o
// histórico de vendas que o referencia
func DeactivateProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeactivateProduct")

		id, ok := pathID(w, r, "ID do produto")
		if !ok {
			return
		}

		if err := service.DeactivateProduct(id); err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao desativar produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
