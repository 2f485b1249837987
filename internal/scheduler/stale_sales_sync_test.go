package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/retail-manager-api/internal/config"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T, maxAgeHours int) (*StaleSalesSyncService, *mocks.MockSaleRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSaleRepo := mocks.NewMockSaleRepository(ctrl)
	service := NewStaleSalesSyncService(mockSaleRepo, &config.Config{
		StaleSalesSync: config.StaleSalesSync{
			CronSchedule: "0 * * * *",
			MaxAgeHours:  maxAgeHours,
			Enabled:      true,
		},
	})

	return service, mockSaleRepo
}

func TestStaleSalesSyncService_CancelStaleSales(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(mockSaleRepo *mocks.MockSaleRepository)
		wantErr       bool
		wantCancelled int
	}{
		{
			name: "Nenhuma venda expirada - nada a cancelar",
			setup: func(mockSaleRepo *mocks.MockSaleRepository) {
				mockSaleRepo.EXPECT().
					FindStaleProcessing(gomock.Any()).
					Return([]*domain.Sale{}, nil)
			},
			wantCancelled: 0,
		},
		{
			name: "Vendas expiradas - todas canceladas",
			setup: func(mockSaleRepo *mocks.MockSaleRepository) {
				mockSaleRepo.EXPECT().
					FindStaleProcessing(gomock.Any()).
					DoAndReturn(func(cutoff time.Time) ([]*domain.Sale, error) {
						// Corte respeita a idade máxima configurada (24h)
						assert.WithinDuration(t, time.Now().Add(-24*time.Hour), cutoff, time.Minute)
						return []*domain.Sale{
							{ID: 1, Status: domain.SaleStatusProcessing},
							{ID: 2, Status: domain.SaleStatusProcessing},
						}, nil
					})
				mockSaleRepo.EXPECT().Cancel(1).Return(nil)
				mockSaleRepo.EXPECT().Cancel(2).Return(nil)
			},
			wantCancelled: 2,
		},
		{
			name: "Erro em uma venda não interrompe o lote",
			setup: func(mockSaleRepo *mocks.MockSaleRepository) {
				mockSaleRepo.EXPECT().
					FindStaleProcessing(gomock.Any()).
					Return([]*domain.Sale{
						{ID: 1, Status: domain.SaleStatusProcessing},
						{ID: 2, Status: domain.SaleStatusProcessing},
						{ID: 3, Status: domain.SaleStatusProcessing},
					}, nil)
				mockSaleRepo.EXPECT().Cancel(1).Return(nil)
				mockSaleRepo.EXPECT().Cancel(2).Return(assert.AnError)
				mockSaleRepo.EXPECT().Cancel(3).Return(nil)
			},
			wantCancelled: 2,
		},
		{
			name: "Erro na busca - propagado",
			setup: func(mockSaleRepo *mocks.MockSaleRepository) {
				mockSaleRepo.EXPECT().
					FindStaleProcessing(gomock.Any()).
					Return(nil, assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockSaleRepo := newTestSyncService(t, 24)
			tt.setup(mockSaleRepo)

			err := service.CancelStaleSales()

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			status := service.Status()
			assert.Equal(t, tt.wantCancelled, status.LastSyncCancelled)
			assert.False(t, status.Running)
			require.NotNil(t, status.LastSyncStartedAt)
			require.NotNil(t, status.LastSyncCompletedAt)
		})
	}
}

func TestStaleSalesSyncService_Status(t *testing.T) {
	service, _ := newTestSyncService(t, 24)

	status := service.Status()

	assert.True(t, status.Enabled)
	assert.Equal(t, "0 * * * *", status.CronSchedule)
	assert.False(t, status.Running)
	assert.Nil(t, status.LastSyncStartedAt)
	assert.Nil(t, status.LastSyncCompletedAt)
	assert.Zero(t, status.LastSyncCancelled)
}

func TestStaleSalesSyncService_TriggerManualSync(t *testing.T) {
	service, mockSaleRepo := newTestSyncService(t, 48)

	mockSaleRepo.EXPECT().
		FindStaleProcessing(gomock.Any()).
		Return([]*domain.Sale{{ID: 7, Status: domain.SaleStatusProcessing}}, nil)
	mockSaleRepo.EXPECT().Cancel(7).Return(nil)

	require.NoError(t, service.TriggerManualSync())
	assert.Equal(t, 1, service.Status().LastSyncCancelled)
}
