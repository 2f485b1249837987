package forecasting

import (
	"errors"
	"math"
	"math/rand"
)

// Parâmetros do ensemble. Muitas árvores rasas e independentes, com a
// média como agregação: barato de treinar a cada requisição e capta
// interações não-lineares entre tendência e sazonalidade que uma
// regressão linear única não capta com pouco histórico.
type forestParams struct {
	trees    int
	maxDepth int
	minLeaf  int
	seed     int64
}

func defaultForestParams() forestParams {
	return forestParams{
		trees:    100,
		maxDepth: 5,
		minLeaf:  1,
		seed:     42,
	}
}

// regressionForest é o modelo efêmero: treinado do zero a cada
// requisição e descartado em seguida. Nenhum estado é compartilhado
// entre requisições.
type regressionForest struct {
	params forestParams
	trees  []*treeNode
}

func newRegressionForest(params forestParams) *regressionForest {
	return &regressionForest{params: params}
}

var errNotEnoughSamples = errors.New("amostras insuficientes para treinar o ensemble")

// Fit treina as árvores sobre amostras bootstrap do conjunto de
// treinamento. A seed fixa torna o treinamento determinístico para o
// mesmo histórico.
func (f *regressionForest) Fit(rows [][]float64, targets []float64) error {
	if len(rows) < minObservations || len(rows) != len(targets) {
		return errNotEnoughSamples
	}

	rng := rand.New(rand.NewSource(f.params.seed))
	f.trees = make([]*treeNode, 0, f.params.trees)

	for i := 0; i < f.params.trees; i++ {
		sampleRows := make([][]float64, len(rows))
		sampleTargets := make([]float64, len(rows))
		for j := range rows {
			pick := rng.Intn(len(rows))
			sampleRows[j] = rows[pick]
			sampleTargets[j] = targets[pick]
		}

		f.trees = append(f.trees, buildTree(sampleRows, sampleTargets, 0, f.params))
	}

	return nil
}

// Predict retorna a média das previsões das árvores. Só deve ser chamado
// após Fit.
func (f *regressionForest) Predict(row []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}

	sum := 0.0
	for _, tree := range f.trees {
		sum += tree.predict(row)
	}

	return sum / float64(len(f.trees))
}

// treeNode é um nó de uma árvore de regressão binária. Folhas guardam a
// média dos alvos que caíram nelas.
type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) predict(row []float64) float64 {
	if n.leaf {
		return n.value
	}
	if row[n.feature] <= n.threshold {
		return n.left.predict(row)
	}
	return n.right.predict(row)
}

func buildTree(rows [][]float64, targets []float64, depth int, params forestParams) *treeNode {
	if depth >= params.maxDepth || len(rows) <= params.minLeaf {
		return leafNode(targets)
	}

	feature, threshold, found := bestSplit(rows, targets, params.minLeaf)
	if !found {
		return leafNode(targets)
	}

	var leftRows, rightRows [][]float64
	var leftTargets, rightTargets []float64
	for i, row := range rows {
		if row[feature] <= threshold {
			leftRows = append(leftRows, row)
			leftTargets = append(leftTargets, targets[i])
		} else {
			rightRows = append(rightRows, row)
			rightTargets = append(rightTargets, targets[i])
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(leftRows, leftTargets, depth+1, params),
		right:     buildTree(rightRows, rightTargets, depth+1, params),
	}
}

func leafNode(targets []float64) *treeNode {
	return &treeNode{leaf: true, value: mean(targets)}
}

// bestSplit procura, entre todas as features e pontos médios entre
// valores consecutivos, o corte que minimiza a soma dos erros
// quadráticos dos dois lados. O conjunto é pequeno (meses de histórico),
// então a busca exaustiva é barata.
func bestSplit(rows [][]float64, targets []float64, minLeaf int) (int, float64, bool) {
	bestFeature := 0
	bestThreshold := 0.0
	bestScore := math.Inf(1)
	found := false

	featureCount := len(rows[0])
	for feature := 0; feature < featureCount; feature++ {
		values := uniqueSorted(rows, feature)
		for i := 0; i+1 < len(values); i++ {
			threshold := (values[i] + values[i+1]) / 2

			var left, right []float64
			for j, row := range rows {
				if row[feature] <= threshold {
					left = append(left, targets[j])
				} else {
					right = append(right, targets[j])
				}
			}

			if len(left) < minLeaf || len(right) < minLeaf {
				continue
			}

			score := sumSquaredError(left) + sumSquaredError(right)
			if score < bestScore {
				bestFeature = feature
				bestThreshold = threshold
				bestScore = score
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func uniqueSorted(rows [][]float64, feature int) []float64 {
	seen := make(map[float64]struct{}, len(rows))
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row[feature]]; ok {
			continue
		}
		seen[row[feature]] = struct{}{}
		values = append(values, row[feature])
	}

	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}

	return values
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sumSquaredError(values []float64) float64 {
	m := mean(values)
	sse := 0.0
	for _, v := range values {
		diff := v - m
		sse += diff * diff
	}
	return sse
}
