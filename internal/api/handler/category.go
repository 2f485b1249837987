package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/internal/usecases/cataloging"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
)

// ListCategories lista todas as categorias do catálogo
func ListCategories(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.ListCategories()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar categorias", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(categories)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// CreateCategory cria uma nova categoria
func CreateCategory(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCategory")

		var category *domain.Category
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		category, err := service.CreateCategory(category)
		if err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao criar categoria")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(category)
	}
}

// UpdateCategory atualiza uma categoria existente
func UpdateCategory(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateCategory")

		id, ok := pathID(w, r, "ID da categoria")
		if !ok {
			return
		}

		var category domain.Category
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		category.ID = id

		if err := service.UpdateCategory(&category); err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao atualizar categoria")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// DeleteCategory remove uma categoria sem produtos vinculados
func DeleteCategory(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteCategory")

		id, ok := pathID(w, r, "ID da categoria")
		if !ok {
			return
		}

		if err := service.DeleteCategory(id); err != nil {
			logrus.Error(err)
			handleCatalogError(w, err, "Erro ao remover categoria")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID extrai e valida o parâmetro :id da URL
func pathID(w http.ResponseWriter, r *http.Request, label string) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, label+" não fornecido", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, label+" inválido", nil)
		return 0, false
	}

	return id, true
}

// handleCatalogError traduz erros do catálogo para a resposta da API
func handleCatalogError(w http.ResponseWriter, err error, fallback string) {
	var catalogErr *cataloging.CatalogError
	if errors.As(err, &catalogErr) {
		message := catalogErr.Details
		if message == "" {
			message = catalogErr.Err.Error()
		}
		apiErrors.WriteError(w, catalogErr.Code, message, nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, fallback, nil)
}
