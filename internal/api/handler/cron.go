package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/internal/scheduler"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
	"github.com/vfg2006/retail-manager-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeStaleSales = "stale-sales"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	StaleSalesSyncService *scheduler.StaleSalesSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeStaleSales:
			if services.StaleSalesSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cancelamento de vendas expiradas não disponível", nil)
				return
			}
			if err := services.StaleSalesSyncService.TriggerManualSync(); err != nil {
				logrus.WithError(err).Error("Erro na execução manual do cancelamento de vendas expiradas")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar cron job", nil)
				return
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: stale-sales", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job executada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != 1 {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"stale-sales": services.StaleSalesSyncService.Status(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
