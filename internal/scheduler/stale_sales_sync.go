// Package scheduler contém os serviços de agendamento para rotinas de manutenção
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository"
	"github.com/vfg2006/retail-manager-api/internal/config"
)

// StaleSalesSyncService cancela vendas presas em PROCESSING cujo
// pagamento nunca foi confirmado. Vendas canceladas saem das agregações
// do dashboard, que consideram apenas vendas COMPLETED.
type StaleSalesSyncService struct {
	scheduler           *gocron.Scheduler
	saleRepo            repository.SaleRepository
	config              config.StaleSalesSync
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncCancelled   int
}

// SyncStatus é o retrato do estado do agendador para o endpoint de cron
type SyncStatus struct {
	Enabled             bool       `json:"enabled"`
	CronSchedule        string     `json:"cron_schedule"`
	Running             bool       `json:"running"`
	LastSyncStartedAt   *time.Time `json:"last_sync_started_at,omitempty"`
	LastSyncCompletedAt *time.Time `json:"last_sync_completed_at,omitempty"`
	LastSyncCancelled   int        `json:"last_sync_cancelled"`
}

func NewStaleSalesSyncService(
	saleRepo repository.SaleRepository,
	cfg *config.Config,
) *StaleSalesSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.StaleSalesSync.CronSchedule,
		"max_age_hours": cfg.StaleSalesSync.MaxAgeHours,
	}).Info("Configuração do agendador de vendas expiradas carregada")

	return &StaleSalesSyncService{
		scheduler: scheduler,
		saleRepo:  saleRepo,
		config:    cfg.StaleSalesSync,
	}
}

func (s *StaleSalesSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de cancelamento de vendas expiradas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de cancelamento de vendas expiradas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.CancelStaleSales(); err != nil {
			logrus.WithError(err).Error("Erro no cancelamento de vendas expiradas")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar cancelamento de vendas expiradas: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de vendas expiradas")
		s.scheduler.Stop()
	}()

	return nil
}

// CancelStaleSales busca vendas em PROCESSING com pagamento pendente
// mais antigas que o limite configurado e as cancela uma a uma. Erros
// individuais não interrompem o lote.
func (s *StaleSalesSyncService) CancelStaleSales() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Cancelamento de vendas expiradas já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	cutoff := time.Now().Add(-time.Duration(s.config.MaxAgeHours) * time.Hour)

	logrus.WithField("cutoff", cutoff.Format(time.RFC3339)).Info("Iniciando cancelamento de vendas expiradas")

	staleSales, err := s.saleRepo.FindStaleProcessing(cutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar vendas expiradas")
		return err
	}

	if len(staleSales) == 0 {
		s.lastSyncCancelled = 0
		logrus.Info("Nenhuma venda expirada encontrada")
		return nil
	}

	cancelled := 0
	for _, sale := range staleSales {
		if err := s.saleRepo.Cancel(sale.ID); err != nil {
			logrus.WithError(err).WithField("sale_id", sale.ID).Error("Erro ao cancelar venda expirada")
			continue
		}
		cancelled++
	}

	s.lastSyncCancelled = cancelled

	logrus.WithFields(logrus.Fields{
		"found":     len(staleSales),
		"cancelled": cancelled,
	}).Info("Cancelamento de vendas expiradas concluído")

	return nil
}

// TriggerManualSync dispara o cancelamento fora do horário agendado
func (s *StaleSalesSyncService) TriggerManualSync() error {
	logrus.Info("Cancelamento manual de vendas expiradas solicitado")
	return s.CancelStaleSales()
}

// Status retorna o estado atual do agendador
func (s *StaleSalesSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SyncStatus{
		Enabled:           s.config.Enabled,
		CronSchedule:      s.config.CronSchedule,
		Running:           s.syncRunning,
		LastSyncCancelled: s.lastSyncCancelled,
	}

	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastSyncStartedAt = &startedAt
	}

	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastSyncCompletedAt = &completedAt
	}

	return status
}
