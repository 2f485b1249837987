package reporting

import (
	"github.com/vfg2006/retail-manager-api/infrastructure/repository"
	"github.com/vfg2006/retail-manager-api/internal/domain"
	"github.com/vfg2006/retail-manager-api/pkg/apiErrors"
	"github.com/vfg2006/retail-manager-api/pkg/log"
)

// ReportService gera relatórios de vendas a partir de prompts de texto
// livre. O prompt é interpretado pelo parser próprio; o relatório sai
// agrupado por produto, cliente ou categoria, ou como total geral.
type ReportService interface {
	GenerateFromPrompt(prompt string) (*domain.SalesReport, string, error)
	Generate(filter domain.ReportFilter) (*domain.SalesReport, error)
}

type Service struct {
	lineItemRepository repository.SaleLineItemRepository
}

func NewService(lineItemRepository repository.SaleLineItemRepository) ReportService {
	return &Service{
		lineItemRepository: lineItemRepository,
	}
}

// GenerateFromPrompt interpreta o prompt e gera o relatório. Retorna
// também o formato de saída pedido (pdf ou excel) para o handler montar
// a resposta.
func (s *Service) GenerateFromPrompt(prompt string) (*domain.SalesReport, string, error) {
	filters := ParsePrompt(prompt)

	if filters.StartDate == nil || filters.EndDate == nil {
		return nil, "", NewReportError(ErrMissingDateRange, apiErrors.ErrInvalidRequest, `Inclua um intervalo no prompt (ex: "mes de septiembre")`)
	}

	filter := domain.ReportFilter{
		StartDate:      *filters.StartDate,
		EndDate:        *filters.EndDate,
		ProductName:    filters.ProductName,
		ClientUsername: filters.ClientUsername,
		GroupBy:        filters.GroupBy,
	}

	report, err := s.Generate(filter)
	if err != nil {
		return nil, "", err
	}

	return report, filters.Format, nil
}

// Generate executa a agregação conforme o agrupamento pedido. Sem
// agrupamento, o relatório traz apenas o total geral do período.
func (s *Service) Generate(filter domain.ReportFilter) (*domain.SalesReport, error) {
	log.L.WithFields(log.Fields{
		"group_by":   filter.GroupBy,
		"start_date": filter.StartDate.Format("2006-01-02"),
		"end_date":   filter.EndDate.Format("2006-01-02"),
	}).Info("gerando relatório de vendas")

	switch filter.GroupBy {
	case domain.ReportGroupByProduct:
		rows, err := s.lineItemRepository.ReportByProduct(filter)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "Erro ao agregar vendas por produto")
		}

		return &domain.SalesReport{
			Title:   "Reporte de Ventas por Producto",
			GroupBy: filter.GroupBy,
			Headers: []string{"Producto", "Cantidad Vendida", "Total Recaudado"},
			Rows:    rows,
		}, nil

	case domain.ReportGroupByClient:
		rows, err := s.lineItemRepository.ReportByClient(filter)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "Erro ao agregar vendas por cliente")
		}

		return &domain.SalesReport{
			Title:   "Reporte de Ventas por Cliente",
			GroupBy: filter.GroupBy,
			Headers: []string{"Cliente (username)", "N° Compras", "Total Gastado"},
			Rows:    rows,
		}, nil

	case domain.ReportGroupByCategory:
		rows, err := s.lineItemRepository.ReportByCategory(filter)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "Erro ao agregar vendas por categoria")
		}

		return &domain.SalesReport{
			Title:   "Reporte de Ventas por Categoría",
			GroupBy: filter.GroupBy,
			Headers: []string{"Categoría", "Cantidad Vendida", "Total Recaudado"},
			Rows:    rows,
		}, nil

	default:
		total, err := s.lineItemRepository.ReportTotal(filter)
		if err != nil {
			return nil, NewReportError(err, apiErrors.ErrDatabaseOperation, "Erro ao calcular o total geral")
		}

		return &domain.SalesReport{
			Title:   "Reporte de Ventas General",
			Headers: []string{"Total General de Ventas"},
			Total:   &total,
		}, nil
	}
}
