package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro estáveis expostos para o frontend
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_004" // Token inválido
	ErrExpiredToken          = "AUTH_005" // Token expirado
	ErrInsufficientPrivilege = "AUTH_006" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_007" // Usuário já existe

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidFilter       = "VAL_004" // Filtro de consulta inválido

	// Erros de recursos (3000-3999)
	ErrResourceNotFound = "RES_001" // Recurso não encontrado
	ErrProductNotFound  = "RES_002" // Produto não encontrado
	ErrCategoryNotFound = "RES_003" // Categoria não encontrada
	ErrSaleNotFound     = "RES_004" // Venda não encontrada

	// Erros de previsão de vendas (4000-4999)
	ErrForecastNoData              = "FOR_001" // Nenhuma venda para os filtros
	ErrForecastInsufficientHistory = "FOR_002" // Histórico mensal insuficiente

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:          http.StatusUnauthorized,
	ErrUserDisabled:                http.StatusForbidden,
	ErrUserNotFound:                http.StatusNotFound,
	ErrInvalidToken:                http.StatusUnauthorized,
	ErrExpiredToken:                http.StatusUnauthorized,
	ErrInsufficientPrivilege:       http.StatusForbidden,
	ErrUserAlreadyExists:           http.StatusBadRequest,
	ErrInvalidRequest:              http.StatusBadRequest,
	ErrMissingRequiredData:         http.StatusBadRequest,
	ErrInvalidFormat:               http.StatusBadRequest,
	ErrInvalidFilter:               http.StatusBadRequest,
	ErrResourceNotFound:            http.StatusNotFound,
	ErrProductNotFound:             http.StatusNotFound,
	ErrCategoryNotFound:            http.StatusNotFound,
	ErrSaleNotFound:                http.StatusNotFound,
	ErrForecastNoData:              http.StatusBadRequest,
	ErrForecastInsufficientHistory: http.StatusBadRequest,
	ErrInternalServer:              http.StatusInternalServerError,
	ErrDatabaseOperation:           http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
