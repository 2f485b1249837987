package forecasting

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/retail-manager-api/infrastructure/repository"
	"github.com/vfg2006/retail-manager-api/internal/config"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/log"
	"github.com/vfg2006/retail-manager-api/pkg/utils"
)

// Forecaster expõe as duas operações do dashboard: série histórica
// mensal e projeção de meses futuros. Ambas recebem o mapa frouxo de
// filtros vindo do frontend e o normalizam internamente.
type Forecaster interface {
	GetHistory(filters map[string]any) ([]domain.SeriesPoint, error)
	GetForecast(filters map[string]any, months int) ([]domain.SeriesPoint, error)
}

type forecaster struct {
	lineItemRepository repository.SaleLineItemRepository
	cfg                config.Forecast
}

func NewForecaster(
	lineItemRepository repository.SaleLineItemRepository,
	cfg config.Forecast,
) Forecaster {
	return &forecaster{
		lineItemRepository: lineItemRepository,
		cfg:                cfg,
	}
}

// GetHistory retorna a série mensal agregada, um ponto por mês com
// vendas, em ordem cronológica. Os valores preservam a representação
// decimal exata dos totais.
func (f *forecaster) GetHistory(filters map[string]any) ([]domain.SeriesPoint, error) {
	spec, err := NormalizeFilters(filters)
	if err != nil {
		return nil, err
	}

	observations, err := f.lineItemRepository.AggregateMonthly(spec)
	if err != nil {
		return nil, err
	}

	series := make([]domain.SeriesPoint, 0, len(observations))
	for _, observation := range observations {
		series = append(series, domain.SeriesPoint{
			Date:  observation.Month.Format(time.DateOnly),
			Value: json.Number(observation.Value.String()),
		})
	}

	return series, nil
}

// GetForecast treina um modelo efêmero sobre o histórico filtrado e
// projeta os próximos meses a partir do último mês observado. O modelo
// é descartado ao fim da requisição; filtros diferentes produzem
// históricos diferentes e portanto modelos diferentes.
func (f *forecaster) GetForecast(filters map[string]any, months int) ([]domain.SeriesPoint, error) {
	spec, err := NormalizeFilters(filters)
	if err != nil {
		return nil, err
	}

	months = f.clampHorizon(months)

	observations, err := f.lineItemRepository.AggregateMonthly(spec)
	if err != nil {
		return nil, err
	}

	if len(observations) == 0 {
		return nil, NewForecastError(ErrNoMatchingData, 0, describeSpec(spec))
	}

	if len(observations) < minObservations {
		return nil, NewForecastError(ErrInsufficientHistory, len(observations), describeSpec(spec))
	}

	table := buildFeatureTable(observations)

	model := newRegressionForest(defaultForestParams())
	if err := model.Fit(table.rows, table.targets); err != nil {
		return nil, err
	}

	last := observations[len(observations)-1]
	lastIndex := len(observations) - 1

	log.L.WithFields(log.Fields{
		"observations": len(observations),
		"months":       months,
		"metric":       spec.Metric,
	}).Debug("modelo de previsão treinado")

	series := make([]domain.SeriesPoint, 0, months)
	for step := 1; step <= months; step++ {
		month := utils.TruncateToMonth(last.Month).AddDate(0, step, 0)

		predicted := model.Predict([]float64{
			float64(lastIndex + step),
			float64(int(month.Month())),
		})
		// Vendas não podem ser negativas; o ensemble pode extrapolar
		// abaixo de zero em séries decrescentes
		if predicted < 0 {
			predicted = 0
		}
		predicted = utils.RoundWithTwoDecimalPlace(predicted)

		series = append(series, domain.SeriesPoint{
			Date:  month.Format(time.DateOnly),
			Value: json.Number(strconv.FormatFloat(predicted, 'f', 2, 64)),
		})
	}

	return series, nil
}

// clampHorizon aplica o horizonte padrão e o teto configurados
func (f *forecaster) clampHorizon(months int) int {
	if months <= 0 {
		return f.cfg.DefaultMonths
	}
	if months > f.cfg.MaxMonths {
		return f.cfg.MaxMonths
	}
	return months
}

func describeSpec(spec domain.FilterSpec) string {
	parts := []string{fmt.Sprintf("metric=%s", spec.Metric)}
	if spec.CategoryID != nil {
		parts = append(parts, fmt.Sprintf("category_id=%d", *spec.CategoryID))
	}
	if spec.ProductID != nil {
		parts = append(parts, fmt.Sprintf("product_id=%d", *spec.ProductID))
	}
	if spec.StartDate != nil {
		parts = append(parts, fmt.Sprintf("start_date=%s", spec.StartDate.Format(time.DateOnly)))
	}
	if spec.EndDate != nil {
		parts = append(parts, fmt.Sprintf("end_date=%s", spec.EndDate.Format(time.DateOnly)))
	}
	return strings.Join(parts, " ")
}
