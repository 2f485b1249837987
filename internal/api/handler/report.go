package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
)

type GenerateReportRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateReportResponse struct {
	Format string              `json:"format"`
	Report *domain.SalesReport `json:"report"`
}

// GenerateReport interpreta o prompt de texto livre e retorna o
// relatório agregado junto com o formato de saída pedido
func GenerateReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateReport")

		var req GenerateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.Prompt == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "O prompt do relatório é obrigatório", nil)
			return
		}

		report, format, err := service.GenerateFromPrompt(req.Prompt)
		if err != nil {
			logrus.Error(err)

			var reportErr *reporting.ReportError
			if errors.As(err, &reportErr) {
				message := reportErr.Details
				if message == "" {
					message = reportErr.Err.Error()
				}
				apiErrors.WriteError(w, reportErr.Code, message, nil)
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(GenerateReportResponse{
			Format: format,
			Report: report,
		})
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
