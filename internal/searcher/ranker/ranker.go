package ranker

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
)

// Result is one ranked document for a query.
type Result struct {
	Rank  int
	DocID int
	Score float64
}

// Engine scores queries against a read-only vector model. It is safe for
// concurrent use.
type Engine struct {
	model    *matrix.Model
	docNorms []float64
}

// NewEngine precomputes the Euclidean norm of every document column.
func NewEngine(model *matrix.Model) *Engine {
	weights := model.Weights
	sq := make([]float64, weights.NumDocs())
	for i := 0; i < weights.NumTerms(); i++ {
		weights.EachCell(i, func(col int, v float64) {
			sq[col] += v * v
		})
	}
	for j := range sq {
		sq[j] = math.Sqrt(sq[j])
	}
	return &Engine{model: model, docNorms: sq}
}

// Model returns the model the engine ranks against.
func (e *Engine) Model() *matrix.Model {
	return e.model
}

// QueryVector builds the query weight vector over the model vocabulary:
// a term's idf when the term occurs in terms, zero otherwise. Repetitions
// do not add weight and unknown terms are ignored.
func (e *Engine) QueryVector(terms []string) []float64 {
	qv := make([]float64, e.model.Weights.NumTerms())
	for _, term := range terms {
		if i, ok := e.model.Weights.TermIndex(term); ok {
			qv[i] = e.model.IDF(i)
		}
	}
	return qv
}

// Scores returns the cosine similarity between qv and every document
// column, in document order. A zero query or document norm scores 0.
func (e *Engine) Scores(qv []float64) []float64 {
	weights := e.model.Weights
	scores := make([]float64, weights.NumDocs())

	var qNormSq float64
	for i, q := range qv {
		if q == 0 {
			continue
		}
		qNormSq += q * q
		weights.EachCell(i, func(col int, v float64) {
			scores[col] += v * q
		})
	}
	qNorm := math.Sqrt(qNormSq)

	for j, dot := range scores {
		denom := e.docNorms[j] * qNorm
		if denom == 0 || dot == 0 {
			scores[j] = 0
			continue
		}
		s := dot / denom
		if s > 1 {
			s = 1
		}
		scores[j] = s
	}
	return scores
}

// RankVector scores qv and returns the documents with a non-zero score,
// highest first. Equal scores are ordered by ascending document id.
func (e *Engine) RankVector(qv []float64) []Result {
	scores := e.Scores(qv)
	results := make([]Result, 0)
	for j, s := range scores {
		if s == 0 || math.IsNaN(s) {
			continue
		}
		results = append(results, Result{DocID: e.model.Weights.Document(j), Score: s})
	}
	sort.Slice(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].DocID < results[b].DocID
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// Rank builds the query vector for terms and ranks every document.
func (e *Engine) Rank(terms []string) []Result {
	return e.RankVector(e.QueryVector(terms))
}
