package forecasting

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/retail-manager-api/internal/config"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func newTestForecaster(t *testing.T) (Forecaster, *mocks.MockSaleLineItemRepository) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockSaleLineItemRepository(ctrl)
	service := NewForecaster(mockRepo, config.Forecast{
		DefaultMonths: 6,
		MaxMonths:     24,
	})

	return service, mockRepo
}

func TestForecaster_GetHistory(t *testing.T) {
	service, mockRepo := newTestForecaster(t)

	observations := monthlyObservations(2025, time.June, 1500.50, 2200, 1800.25)
	mockRepo.EXPECT().
		AggregateMonthly(gomock.Any()).
		Return(observations, nil)

	series, err := service.GetHistory(map[string]any{"metric": "revenue"})

	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, "2025-06-01", series[0].Date)
	assert.Equal(t, "1500.5", series[0].Value.String())
	assert.Equal(t, "2025-07-01", series[1].Date)
	assert.Equal(t, "2025-08-01", series[2].Date)
}

func TestForecaster_GetHistory_InvalidFilter(t *testing.T) {
	service, _ := newTestForecaster(t)

	_, err := service.GetHistory(map[string]any{"metric": "profit"})

	assert.ErrorIs(t, err, ErrInvalidMetric)
}

func TestForecaster_GetForecast(t *testing.T) {
	tests := []struct {
		name         string
		observations []domain.MonthlyObservation
		months       int
		wantErr      error
		validate     func(t *testing.T, series []domain.SeriesPoint)
	}{
		{
			name:         "Sem histórico - erro de dados ausentes",
			observations: []domain.MonthlyObservation{},
			months:       6,
			wantErr:      ErrNoMatchingData,
		},
		{
			name:         "Um único mês - histórico insuficiente",
			observations: monthlyObservations(2025, time.August, 1000),
			months:       6,
			wantErr:      ErrInsufficientHistory,
		},
		{
			name:         "Dois meses de histórico - mínimo aceito, valor finito e não-negativo",
			observations: monthlyObservations(2025, time.November, 100, 200),
			months:       1,
			validate: func(t *testing.T, series []domain.SeriesPoint) {
				require.Len(t, series, 1)
				assert.Equal(t, "2026-01-01", series[0].Date)

				value, parseErr := strconv.ParseFloat(series[0].Value.String(), 64)
				require.NoError(t, parseErr)
				assert.False(t, math.IsNaN(value))
				assert.False(t, math.IsInf(value, 0))
				assert.GreaterOrEqual(t, value, 0.0)
			},
		},
		{
			name:         "Seis meses de histórico - um ponto por mês pedido",
			observations: monthlyObservations(2025, time.March, 1000, 1200, 1100, 1400, 1500, 1350),
			months:       3,
			validate: func(t *testing.T, series []domain.SeriesPoint) {
				require.Len(t, series, 3)
				// Projeção parte do mês seguinte ao último observado
				assert.Equal(t, "2025-09-01", series[0].Date)
				assert.Equal(t, "2025-10-01", series[1].Date)
				assert.Equal(t, "2025-11-01", series[2].Date)
			},
		},
		{
			name:         "Último mês em dezembro - projeção vira o ano",
			observations: monthlyObservations(2025, time.October, 900, 1100, 1300),
			months:       2,
			validate: func(t *testing.T, series []domain.SeriesPoint) {
				require.Len(t, series, 2)
				assert.Equal(t, "2026-01-01", series[0].Date)
				assert.Equal(t, "2026-02-01", series[1].Date)
			},
		},
		{
			name:         "Horizonte zero - usa o padrão configurado",
			observations: monthlyObservations(2025, time.January, 800, 950, 870, 1020),
			months:       0,
			validate: func(t *testing.T, series []domain.SeriesPoint) {
				assert.Len(t, series, 6)
			},
		},
		{
			name:         "Horizonte acima do teto - limitado ao máximo",
			observations: monthlyObservations(2025, time.January, 800, 950, 870, 1020),
			months:       100,
			validate: func(t *testing.T, series []domain.SeriesPoint) {
				assert.Len(t, series, 24)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo := newTestForecaster(t)

			mockRepo.EXPECT().
				AggregateMonthly(gomock.Any()).
				Return(tt.observations, nil)

			series, err := service.GetForecast(map[string]any{}, tt.months)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var forecastErr *ForecastError
				require.ErrorAs(t, err, &forecastErr)
				assert.Equal(t, len(tt.observations), forecastErr.Observations)
				return
			}

			require.NoError(t, err)
			tt.validate(t, series)

			// Valores nunca negativos, sempre com duas casas decimais
			for _, point := range series {
				value, parseErr := strconv.ParseFloat(point.Value.String(), 64)
				require.NoError(t, parseErr)
				assert.GreaterOrEqual(t, value, 0.0)
			}
		})
	}
}

func TestForecaster_FiltersReachRepository(t *testing.T) {
	service, mockRepo := newTestForecaster(t)

	mockRepo.EXPECT().
		AggregateMonthly(gomock.Any()).
		DoAndReturn(func(spec domain.FilterSpec) ([]domain.MonthlyObservation, error) {
			// O filtro de categoria chega intacto à agregação; produto
			// ausente segue irrestrito
			require.NotNil(t, spec.CategoryID)
			assert.Equal(t, 3, *spec.CategoryID)
			assert.Nil(t, spec.ProductID)
			assert.Equal(t, domain.MetricUnitCount, spec.Metric)
			return monthlyObservations(2025, time.May, 40, 55, 61), nil
		})

	_, err := service.GetForecast(map[string]any{
		"category_id": float64(3),
		"metric":      "unit_count",
	}, 2)

	require.NoError(t, err)
}

func TestForecaster_GetForecast_Deterministic(t *testing.T) {
	service, mockRepo := newTestForecaster(t)

	observations := monthlyObservations(2025, time.January, 1000, 1250, 980, 1430, 1600, 1520, 1480, 1700)
	mockRepo.EXPECT().
		AggregateMonthly(gomock.Any()).
		Return(observations, nil).
		Times(2)

	first, err := service.GetForecast(map[string]any{}, 6)
	require.NoError(t, err)

	second, err := service.GetForecast(map[string]any{}, 6)
	require.NoError(t, err)

	// Modelo efêmero com seed fixa: mesmo histórico, mesma projeção
	assert.Equal(t, first, second)
}

func TestForecaster_GetForecast_RepositoryError(t *testing.T) {
	service, mockRepo := newTestForecaster(t)

	mockRepo.EXPECT().
		AggregateMonthly(gomock.Any()).
		Return(nil, assert.AnError)

	_, err := service.GetForecast(map[string]any{}, 6)
	assert.ErrorIs(t, err, assert.AnError)
}
