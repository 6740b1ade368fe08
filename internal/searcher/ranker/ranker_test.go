package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
)

func referenceModel(t testing.TB) *matrix.Model {
	l3 := math.Log10(3)
	weights := matrix.New(
		[]string{"CAT", "DOG", "FISH"},
		[]int{1, 2, 3},
		[][]float64{
			{0, 0, 0},
			{0, l3, 0},
			{l3, 0, 0},
		},
	)
	model, err := matrix.NewModel(weights, []float64{0, l3, l3})
	require.NoError(t, err)
	return model
}

func TestRankReferenceExample(t *testing.T) {
	e := NewEngine(referenceModel(t))

	qv := e.QueryVector([]string{"DOG"})
	assert.InDeltaSlice(t, []float64{0, math.Log10(3), 0}, qv, 1e-12)

	results := e.Rank([]string{"DOG"})
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Rank)
	assert.Equal(t, 2, results[0].DocID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-12)
}

func TestQueryVectorIgnoresRepeatsAndUnknownTerms(t *testing.T) {
	e := NewEngine(referenceModel(t))
	assert.Equal(t, e.QueryVector([]string{"DOG"}), e.QueryVector([]string{"DOG", "DOG", "BIRD"}))
}

func TestRankEmptyMatch(t *testing.T) {
	e := NewEngine(referenceModel(t))

	assert.Empty(t, e.Rank(nil))
	assert.Empty(t, e.Rank([]string{"BIRD"}))
	// CAT has idf 0, so its query vector is all zeros.
	assert.Empty(t, e.Rank([]string{"CAT"}))
	for _, s := range e.Scores(e.QueryVector([]string{"CAT"})) {
		assert.False(t, math.IsNaN(s))
	}
}

func rankingModel(t testing.TB) *matrix.Model {
	weights := matrix.New(
		[]string{"LUNG", "SWEAT", "MUCUS"},
		[]int{4, 7, 9, 12},
		[][]float64{
			{0.5, 0, 0.5, 0.2},
			{0, 0.8, 0.5, 0},
			{0.3, 0.3, 0, 0},
		},
	)
	model, err := matrix.NewModel(weights, []float64{0.3, 0.6, 0.3})
	require.NoError(t, err)
	return model
}

func TestRankOrderingAndExclusion(t *testing.T) {
	e := NewEngine(rankingModel(t))
	results := e.Rank([]string{"LUNG", "SWEAT"})

	require.NotEmpty(t, results)
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
		assert.Greater(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0)
		if i > 0 {
			prev := results[i-1]
			assert.True(t, prev.Score > r.Score || (prev.Score == r.Score && prev.DocID < r.DocID))
		}
	}
}

func TestRankTieBreakByDocumentID(t *testing.T) {
	weights := matrix.New([]string{"LUNG"}, []int{9, 3, 5}, [][]float64{{0.4, 0.4, 0.4}})
	model, err := matrix.NewModel(weights, []float64{0.2})
	require.NoError(t, err)

	results := NewEngine(model).Rank([]string{"LUNG"})
	require.Len(t, results, 3)
	assert.Equal(t, []int{3, 5, 9}, []int{results[0].DocID, results[1].DocID, results[2].DocID})
}

func TestRankScaleInvariance(t *testing.T) {
	e := NewEngine(rankingModel(t))
	qv := e.QueryVector([]string{"LUNG", "SWEAT", "MUCUS"})

	scaled := make([]float64, len(qv))
	for i, v := range qv {
		scaled[i] = v * 7.5
	}

	base := e.RankVector(qv)
	other := e.RankVector(scaled)
	require.Len(t, other, len(base))
	for i := range base {
		assert.Equal(t, base[i].DocID, other[i].DocID)
		assert.InDelta(t, base[i].Score, other[i].Score, 1e-12)
	}
}

func BenchmarkRank(b *testing.B) {
	e := NewEngine(rankingModel(b))
	terms := []string{"LUNG", "SWEAT", "MUCUS"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Rank(terms)
	}
}
