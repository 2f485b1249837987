package forecasting

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/utils"
)

// Chaves reconhecidas no mapa de filtros enviado pelo frontend ou pelo
// parser de prompts. Chaves ausentes ou desconhecidas significam
// "sem restrição"; o valor sentinela "all" também.
const (
	filterKeyCategoryID = "category_id"
	filterKeyProductID  = "product_id"
	filterKeyMetric     = "metric"
	filterKeyStartDate  = "start_date"
	filterKeyEndDate    = "end_date"
)

// NormalizeFilters converte o mapa frouxo de filtros em um FilterSpec
// validado. O contrato é permissivo de propósito: os callers incluem
// tanto o formulário do dashboard quanto o parser de texto livre, e
// ambos podem enviar filtros parciais.
func NormalizeFilters(filters map[string]any) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{
		Metric: domain.MetricRevenue,
	}

	if categoryID, ok := intFilterValue(filters[filterKeyCategoryID]); ok {
		spec.CategoryID = &categoryID
	}

	if productID, ok := intFilterValue(filters[filterKeyProductID]); ok {
		spec.ProductID = &productID
	}

	if raw, ok := stringFilterValue(filters[filterKeyMetric]); ok {
		metric := domain.Metric(raw)
		if metric != domain.MetricRevenue && metric != domain.MetricUnitCount {
			return domain.FilterSpec{}, fmt.Errorf("%w: %q", ErrInvalidMetric, raw)
		}
		spec.Metric = metric
	}

	startDate, err := dateFilterValue(filters[filterKeyStartDate])
	if err != nil {
		return domain.FilterSpec{}, fmt.Errorf("%w: data inicial: %v", ErrInvalidDateRange, err)
	}
	spec.StartDate = startDate

	endDate, err := dateFilterValue(filters[filterKeyEndDate])
	if err != nil {
		return domain.FilterSpec{}, fmt.Errorf("%w: data final: %v", ErrInvalidDateRange, err)
	}
	spec.EndDate = endDate

	if spec.StartDate != nil && spec.EndDate != nil && spec.StartDate.After(*spec.EndDate) {
		return domain.FilterSpec{}, fmt.Errorf(
			"%w: início %s posterior ao fim %s",
			ErrInvalidDateRange,
			spec.StartDate.Format(time.DateOnly),
			spec.EndDate.Format(time.DateOnly),
		)
	}

	return spec, nil
}

// intFilterValue aceita os tipos que o decode de JSON pode produzir para
// um id: número, string numérica ou json.Number. "all", vazio e nil
// significam "sem filtro".
func intFilterValue(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(parsed), true
	case string:
		if v == "" || v == domain.FilterAll {
			return 0, false
		}
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func stringFilterValue(value any) (string, bool) {
	raw, ok := value.(string)
	if !ok || raw == "" || raw == domain.FilterAll {
		return "", false
	}
	return raw, true
}

func dateFilterValue(value any) (*time.Time, error) {
	raw, ok := stringFilterValue(value)
	if !ok {
		return nil, nil
	}

	return utils.ParseDate(raw)
}
