package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vfg2006/retail-manager-api/internal/usecases/forecasting"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
	"github.com/vfg2006/retail-manager-api/pkg/log"
)

// O corpo das requisições do dashboard é um mapa frouxo de filtros:
// category_id, product_id, metric, start_date, end_date e, na previsão,
// months. A normalização acontece no usecase.

// GetHistoricalData retorna a série mensal histórica para os filtros
func GetHistoricalData(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var filters map[string]any
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			logger.WithError(err).Warn("dashboard: corpo de filtros inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		logger.WithField("filters", filters).Debug("dashboard: buscando série histórica")

		series, err := service.GetHistory(filters)
		if err != nil {
			logger.WithError(err).Error("dashboard: erro ao buscar dados históricos")
			handleForecastError(w, err, "Erro ao buscar dados históricos")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(series)
		if err != nil {
			logger.WithError(err).Error("dashboard: erro ao enviar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GeneratePrediction treina o modelo sobre o histórico filtrado e
// retorna a projeção dos próximos meses
func GeneratePrediction(service forecasting.Forecaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var filters map[string]any
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			logger.WithError(err).Warn("dashboard: corpo de filtros inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		// months vem no mesmo mapa dos filtros; ausente ou inválido usa o padrão
		months := 0
		if raw, ok := filters["months"].(float64); ok {
			months = int(raw)
		}

		logger.WithFields(log.Fields{
			"filters": filters,
			"months":  months,
		}).Debug("dashboard: gerando previsão")

		series, err := service.GetForecast(filters, months)
		if err != nil {
			logger.WithError(err).Error("dashboard: erro ao gerar previsão")
			handleForecastError(w, err, "Erro ao gerar previsão")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(series)
		if err != nil {
			logger.WithError(err).Error("dashboard: erro ao enviar resposta")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleForecastError traduz erros do pipeline de previsão para a
// resposta da API
func handleForecastError(w http.ResponseWriter, err error, fallback string) {
	var forecastErr *forecasting.ForecastError
	if errors.As(err, &forecastErr) {
		switch {
		case errors.Is(err, forecasting.ErrNoMatchingData):
			apiErrors.WriteError(w, apiErrors.ErrForecastNoData, forecastErr.Err.Error(), map[string]any{
				"observations": forecastErr.Observations,
			})

		case errors.Is(err, forecasting.ErrInsufficientHistory):
			apiErrors.WriteError(w, apiErrors.ErrForecastInsufficientHistory, forecastErr.Err.Error(), map[string]any{
				"observations": forecastErr.Observations,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
		}
		return
	}

	switch {
	case errors.Is(err, forecasting.ErrInvalidMetric), errors.Is(err, forecasting.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFilter, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
