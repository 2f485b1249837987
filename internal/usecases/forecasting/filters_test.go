package forecasting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-manager-api/internal/domain"
)

func TestNormalizeFilters(t *testing.T) {
	tests := []struct {
		name     string
		filters  map[string]any
		wantErr  error
		validate func(t *testing.T, spec domain.FilterSpec)
	}{
		{
			name:    "Mapa vazio - métrica padrão revenue e sem restrições",
			filters: map[string]any{},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, domain.MetricRevenue, spec.Metric)
				assert.Nil(t, spec.CategoryID)
				assert.Nil(t, spec.ProductID)
				assert.Nil(t, spec.StartDate)
				assert.Nil(t, spec.EndDate)
			},
		},
		{
			name:    "Mapa nil - equivale a mapa vazio",
			filters: nil,
			validate: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, domain.MetricRevenue, spec.Metric)
				assert.Nil(t, spec.CategoryID)
			},
		},
		{
			name: "Valor all - tratado como ausência de filtro",
			filters: map[string]any{
				"category_id": "all",
				"product_id":  "all",
				"metric":      "all",
			},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, domain.MetricRevenue, spec.Metric)
				assert.Nil(t, spec.CategoryID)
				assert.Nil(t, spec.ProductID)
			},
		},
		{
			name: "Ids numéricos vindos do decode de JSON (float64)",
			filters: map[string]any{
				"category_id": float64(3),
				"product_id":  float64(7),
			},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				require.NotNil(t, spec.CategoryID)
				require.NotNil(t, spec.ProductID)
				assert.Equal(t, 3, *spec.CategoryID)
				assert.Equal(t, 7, *spec.ProductID)
			},
		},
		{
			name: "Ids como string numérica e json.Number",
			filters: map[string]any{
				"category_id": "12",
				"product_id":  json.Number("25"),
			},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				require.NotNil(t, spec.CategoryID)
				require.NotNil(t, spec.ProductID)
				assert.Equal(t, 12, *spec.CategoryID)
				assert.Equal(t, 25, *spec.ProductID)
			},
		},
		{
			name: "Métrica unit_count aceita",
			filters: map[string]any{
				"metric": "unit_count",
			},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, domain.MetricUnitCount, spec.Metric)
			},
		},
		{
			name: "Métrica desconhecida - erro",
			filters: map[string]any{
				"metric": "profit",
			},
			wantErr: ErrInvalidMetric,
		},
		{
			name: "Intervalo de datas válido",
			filters: map[string]any{
				"start_date": "2025-01-01",
				"end_date":   "2025-08-31",
			},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				require.NotNil(t, spec.StartDate)
				require.NotNil(t, spec.EndDate)
				assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *spec.StartDate)
				assert.Equal(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), *spec.EndDate)
			},
		},
		{
			name: "Data mal formatada - erro",
			filters: map[string]any{
				"start_date": "01/01/2025",
			},
			wantErr: ErrInvalidDateRange,
		},
		{
			name: "Início posterior ao fim - erro",
			filters: map[string]any{
				"start_date": "2025-08-01",
				"end_date":   "2025-01-01",
			},
			wantErr: ErrInvalidDateRange,
		},
		{
			name: "Chaves desconhecidas são ignoradas",
			filters: map[string]any{
				"months":    float64(6),
				"group_by":  "product",
				"client_id": float64(9),
			},
			validate: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, domain.MetricRevenue, spec.Metric)
				assert.Nil(t, spec.CategoryID)
				assert.Nil(t, spec.ProductID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NormalizeFilters(tt.filters)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.validate(t, spec)
		})
	}
}
