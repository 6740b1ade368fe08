// Package matrix implements the immutable sparse term×document matrices of
// the vector model and the pure transforms between them: count, normalize,
// idf and weight. Every transform returns a new matrix; inputs are never
// modified.
package matrix

import (
	"sort"
)

// Cell is a nonzero entry of a row: the column index and its value.
type Cell struct {
	Col   int
	Value float64
}

// Matrix is a sparse matrix with one row per term and one column per
// document id. Rows hold only nonzero cells, ordered by column.
type Matrix struct {
	terms    []string
	docs     []int
	rows     [][]Cell
	termIdx  map[string]int
	docIndex map[int]int
}

func newMatrix(terms []string, docs []int, rows [][]Cell) *Matrix {
	m := &Matrix{
		terms:    terms,
		docs:     docs,
		rows:     rows,
		termIdx:  make(map[string]int, len(terms)),
		docIndex: make(map[int]int, len(docs)),
	}
	for i, t := range terms {
		m.termIdx[t] = i
	}
	for j, d := range docs {
		m.docIndex[d] = j
	}
	return m
}

// New builds a matrix from dense rows. Zero values are dropped. It is used by
// readers and tests; the pipeline builds matrices through Count.
func New(terms []string, docs []int, dense [][]float64) *Matrix {
	rows := make([][]Cell, len(terms))
	for i := range terms {
		var row []Cell
		if i < len(dense) {
			for j, v := range dense[i] {
				if j < len(docs) && v != 0 {
					row = append(row, Cell{Col: j, Value: v})
				}
			}
		}
		rows[i] = row
	}
	return newMatrix(append([]string(nil), terms...), append([]int(nil), docs...), rows)
}

// FromRows builds a matrix from sparse rows. Each row must list its cells in
// ascending column order; zero cells are dropped.
func FromRows(terms []string, docs []int, rows [][]Cell) *Matrix {
	out := make([][]Cell, len(terms))
	for i := range terms {
		if i >= len(rows) {
			continue
		}
		for _, c := range rows[i] {
			if c.Value != 0 && c.Col >= 0 && c.Col < len(docs) {
				out[i] = append(out[i], c)
			}
		}
	}
	return newMatrix(append([]string(nil), terms...), append([]int(nil), docs...), out)
}

// NumTerms returns the number of rows.
func (m *Matrix) NumTerms() int { return len(m.terms) }

// NumDocs returns the number of columns.
func (m *Matrix) NumDocs() int { return len(m.docs) }

// Terms returns a copy of the row keys.
func (m *Matrix) Terms() []string { return append([]string(nil), m.terms...) }

// Documents returns a copy of the column keys.
func (m *Matrix) Documents() []int { return append([]int(nil), m.docs...) }

// Term returns the key of row i.
func (m *Matrix) Term(i int) string { return m.terms[i] }

// Document returns the id of column j.
func (m *Matrix) Document(j int) int { return m.docs[j] }

// TermIndex returns the row of term.
func (m *Matrix) TermIndex(term string) (int, bool) {
	i, ok := m.termIdx[term]
	return i, ok
}

// DocumentIndex returns the column of document id.
func (m *Matrix) DocumentIndex(id int) (int, bool) {
	j, ok := m.docIndex[id]
	return j, ok
}

// Row returns a copy of the nonzero cells of row i.
func (m *Matrix) Row(i int) []Cell {
	return append([]Cell(nil), m.rows[i]...)
}

// EachCell calls fn for every nonzero cell of row i, in column order.
func (m *Matrix) EachCell(i int, fn func(col int, value float64)) {
	for _, c := range m.rows[i] {
		fn(c.Col, c.Value)
	}
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	row := m.rows[i]
	k := sort.Search(len(row), func(k int) bool { return row[k].Col >= j })
	if k < len(row) && row[k].Col == j {
		return row[k].Value
	}
	return 0
}

// DenseRow returns row i with zeros filled in, in column order.
func (m *Matrix) DenseRow(i int) []float64 {
	out := make([]float64, len(m.docs))
	for _, c := range m.rows[i] {
		out[c.Col] = c.Value
	}
	return out
}

// mapRows returns a matrix with the same keys whose rows are produced by fn.
func (m *Matrix) mapRows(fn func(i int, row []Cell) []Cell) *Matrix {
	rows := make([][]Cell, len(m.rows))
	for i, row := range m.rows {
		rows[i] = fn(i, row)
	}
	return &Matrix{
		terms:    m.terms,
		docs:     m.docs,
		rows:     rows,
		termIdx:  m.termIdx,
		docIndex: m.docIndex,
	}
}
