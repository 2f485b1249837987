package forecasting

import "github.com/vfg2006/retail-manager-api/internal/domain"

// minObservations é o mínimo de meses de histórico para treinar o modelo
const minObservations = 2

// featureTable é a tabela supervisionada derivada da série mensal.
// As features são apenas derivadas do calendário: time_index (posição
// cronológica, captura tendência) e calendar_month (1-12, captura
// sazonalidade). Como meses futuros têm ambas determinísticas, a
// previsão multi-passo não realimenta valores previstos, ao contrário
// de features de lag, que exigiriam encadear previsão a previsão.
type featureTable struct {
	rows    [][]float64
	targets []float64
}

func buildFeatureTable(observations []domain.MonthlyObservation) *featureTable {
	table := &featureTable{
		rows:    make([][]float64, 0, len(observations)),
		targets: make([]float64, 0, len(observations)),
	}

	for i, observation := range observations {
		table.rows = append(table.rows, []float64{
			float64(i),
			float64(int(observation.Month.Month())),
		})
		table.targets = append(table.targets, observation.Value.InexactFloat64())
	}

	return table
}
