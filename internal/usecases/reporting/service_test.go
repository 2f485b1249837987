package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/retail-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func newTestReportService(t *testing.T) (ReportService, *mocks.MockSaleLineItemRepository) {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockSaleLineItemRepository(ctrl)
	return NewService(mockRepo), mockRepo
}

func TestReportService_Generate(t *testing.T) {
	period := domain.ReportFilter{
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
	}

	sampleRows := []*domain.ReportRow{
		{Label: "Smart TV Samsung 55\" 4K UHD", Quantity: 12, Total: decimal.NewFromFloat(7199.88)},
		{Label: "iPhone 15 Pro Max", Quantity: 5, Total: decimal.NewFromFloat(6499.95)},
	}

	tests := []struct {
		name     string
		groupBy  string
		setup    func(mockRepo *mocks.MockSaleLineItemRepository)
		validate func(t *testing.T, report *domain.SalesReport)
	}{
		{
			name:    "Agrupado por produto - título e cabeçalhos em espanhol",
			groupBy: domain.ReportGroupByProduct,
			setup: func(mockRepo *mocks.MockSaleLineItemRepository) {
				mockRepo.EXPECT().ReportByProduct(gomock.Any()).Return(sampleRows, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport) {
				assert.Equal(t, "Reporte de Ventas por Producto", report.Title)
				assert.Equal(t, []string{"Producto", "Cantidad Vendida", "Total Recaudado"}, report.Headers)
				assert.Len(t, report.Rows, 2)
				assert.Nil(t, report.Total)
			},
		},
		{
			name:    "Agrupado por cliente",
			groupBy: domain.ReportGroupByClient,
			setup: func(mockRepo *mocks.MockSaleLineItemRepository) {
				mockRepo.EXPECT().ReportByClient(gomock.Any()).Return(sampleRows, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport) {
				assert.Equal(t, "Reporte de Ventas por Cliente", report.Title)
				assert.Equal(t, []string{"Cliente (username)", "N° Compras", "Total Gastado"}, report.Headers)
			},
		},
		{
			name:    "Agrupado por categoria",
			groupBy: domain.ReportGroupByCategory,
			setup: func(mockRepo *mocks.MockSaleLineItemRepository) {
				mockRepo.EXPECT().ReportByCategory(gomock.Any()).Return(sampleRows, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport) {
				assert.Equal(t, "Reporte de Ventas por Categoría", report.Title)
				assert.Equal(t, []string{"Categoría", "Cantidad Vendida", "Total Recaudado"}, report.Headers)
			},
		},
		{
			name:    "Sem agrupamento - total geral",
			groupBy: "",
			setup: func(mockRepo *mocks.MockSaleLineItemRepository) {
				mockRepo.EXPECT().ReportTotal(gomock.Any()).Return(decimal.NewFromFloat(13699.83), nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport) {
				assert.Equal(t, "Reporte de Ventas General", report.Title)
				assert.Equal(t, []string{"Total General de Ventas"}, report.Headers)
				require.NotNil(t, report.Total)
				assert.Equal(t, "13699.83", report.Total.String())
				assert.Empty(t, report.Rows)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mockRepo := newTestReportService(t)
			tt.setup(mockRepo)

			filter := period
			filter.GroupBy = tt.groupBy

			report, err := service.Generate(filter)

			require.NoError(t, err)
			tt.validate(t, report)
		})
	}
}

func TestReportService_Generate_RepositoryError(t *testing.T) {
	service, mockRepo := newTestReportService(t)

	mockRepo.EXPECT().ReportByProduct(gomock.Any()).Return(nil, assert.AnError)

	_, err := service.Generate(domain.ReportFilter{
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		GroupBy:   domain.ReportGroupByProduct,
	})

	require.Error(t, err)

	var reportErr *ReportError
	assert.ErrorAs(t, err, &reportErr)
}

func TestReportService_GenerateFromPrompt(t *testing.T) {
	t.Run("Prompt com mês e agrupamento - gera relatório e devolve o formato", func(t *testing.T) {
		service, mockRepo := newTestReportService(t)

		mockRepo.EXPECT().
			ReportByProduct(gomock.Any()).
			DoAndReturn(func(filter domain.ReportFilter) ([]*domain.ReportRow, error) {
				// O mês do prompt vira o intervalo do filtro
				assert.Equal(t, time.September, filter.StartDate.Month())
				assert.Equal(t, 1, filter.StartDate.Day())
				assert.Equal(t, 30, filter.EndDate.Day())
				return []*domain.ReportRow{}, nil
			})

		report, format, err := service.GenerateFromPrompt("ventas del mes de septiembre agrupado por producto en excel")

		require.NoError(t, err)
		assert.Equal(t, FormatExcel, format)
		assert.Equal(t, "Reporte de Ventas por Producto", report.Title)
	})

	t.Run("Prompt sem intervalo de datas - erro", func(t *testing.T) {
		service, _ := newTestReportService(t)

		_, _, err := service.GenerateFromPrompt("ventas agrupado por producto")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingDateRange)
	})
}
