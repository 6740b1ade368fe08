package matrix

import (
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Model is the persisted vector model: the tf-idf weight matrix plus each
// term's idf. It is built once and read-only afterwards.
type Model struct {
	Weights *Matrix
	idf     []float64
}

// NewModel pairs a weight matrix with its idf vector.
func NewModel(weights *Matrix, idf []float64) (*Model, error) {
	if len(idf) != weights.NumTerms() {
		return nil, apperrors.Newf(apperrors.ErrInputFormat, "", "",
			"idf vector has %d entries for %d terms", len(idf), weights.NumTerms())
	}
	return &Model{Weights: weights, idf: append([]float64(nil), idf...)}, nil
}

// IDF returns the idf of row i.
func (m *Model) IDF(i int) float64 {
	return m.idf[i]
}

// TermIDF returns the idf of term, or false when term is not in the
// vocabulary.
func (m *Model) TermIDF(term string) (float64, bool) {
	i, ok := m.Weights.TermIndex(term)
	if !ok {
		return 0, false
	}
	return m.idf[i], true
}

// IDFVector returns a copy of the idf column.
func (m *Model) IDFVector() []float64 {
	return append([]float64(nil), m.idf...)
}
