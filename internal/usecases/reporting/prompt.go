package reporting

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/retail-manager-api/internal/domain"
)

// Formatos de saída aceitos no prompt
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
)

// PromptFilters é o resultado bruto da interpretação do texto livre.
// Campos zero significam "não informado no prompt".
type PromptFilters struct {
	Format         string
	StartDate      *time.Time
	EndDate        *time.Time
	GroupBy        string
	ProductName    string
	ClientUsername string
}

// O prompt chega em espanhol, a língua do frontend. Os padrões cobrem as
// frases que a tela de relatórios sugere ao usuário.
var (
	dateRangePattern = regexp.MustCompile(`del (\d{2})/(\d{2})/(\d{4}) al (\d{2})/(\d{2})/(\d{4})`)
	monthPattern     = regexp.MustCompile(`mes de (\w+)`)
	productPattern   = regexp.MustCompile(`del producto ([\wáéíóúñ ]+)`)
	clientPattern    = regexp.MustCompile(`del cliente (\w+)`)
)

var monthNames = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// ParsePrompt interpreta um prompt de texto livre e extrai os filtros do
// relatório. O parser é deliberadamente simples: busca padrões fixos e
// ignora o resto do texto.
func ParsePrompt(prompt string) PromptFilters {
	prompt = strings.ToLower(prompt)

	filters := PromptFilters{
		// PDF é o formato padrão quando o prompt não pede outro
		Format: FormatPDF,
	}

	if strings.Contains(prompt, "en excel") || strings.Contains(prompt, "formato excel") {
		filters.Format = FormatExcel
	}

	// "del DD/MM/YYYY al DD/MM/YYYY"
	if match := dateRangePattern.FindStringSubmatch(prompt); match != nil {
		start, okStart := parseDayMonthYear(match[1], match[2], match[3])
		end, okEnd := parseDayMonthYear(match[4], match[5], match[6])
		if okStart && okEnd {
			filters.StartDate = &start
			filters.EndDate = &end
		}
	}

	// "mes de [nome do mês]": expande para o mês-calendário inteiro do ano corrente
	if match := monthPattern.FindStringSubmatch(prompt); match != nil {
		if month, ok := monthNames[match[1]]; ok {
			year := time.Now().Year()
			start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(0, 1, -1)
			filters.StartDate = &start
			filters.EndDate = &end
		}
	}

	switch {
	case strings.Contains(prompt, "agrupado por producto"):
		filters.GroupBy = domain.ReportGroupByProduct
	case strings.Contains(prompt, "agrupado por cliente"):
		filters.GroupBy = domain.ReportGroupByClient
	case strings.Contains(prompt, "agrupado por categoria"):
		filters.GroupBy = domain.ReportGroupByCategory
	}

	// "del producto [nome]": o nome pode conter espaços
	if match := productPattern.FindStringSubmatch(prompt); match != nil {
		filters.ProductName = strings.TrimSpace(match[1])
	}

	// "del cliente [username]"
	if match := clientPattern.FindStringSubmatch(prompt); match != nil {
		filters.ClientUsername = strings.TrimSpace(match[1])
	}

	return filters
}

func parseDayMonthYear(day, month, year string) (time.Time, bool) {
	d, errDay := strconv.Atoi(day)
	m, errMonth := strconv.Atoi(month)
	y, errYear := strconv.Atoi(year)
	if errDay != nil || errMonth != nil || errYear != nil {
		return time.Time{}, false
	}

	if m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}

	// Rejeita dias inexistentes: time.Date normalizaria 31/02 para março
	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if date.Day() != d || date.Month() != time.Month(m) {
		return time.Time{}, false
	}

	return date, true
}
