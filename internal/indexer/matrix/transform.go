package matrix

import (
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Axis selects how raw term frequencies are normalized.
type Axis string

const (
	// AxisNone keeps raw counts.
	AxisNone Axis = "none"
	// AxisTerm divides every row by its maximum, so each term's strongest
	// document gets 1.
	AxisTerm Axis = "term"
	// AxisDocument divides every column by its maximum, so each document's
	// most frequent term gets 1.
	AxisDocument Axis = "document"
)

// Axes lists the accepted normalization axes.
var Axes = []Axis{AxisNone, AxisTerm, AxisDocument}

// Valid reports whether a is one of Axes.
func (a Axis) Valid() bool {
	for _, known := range Axes {
		if a == known {
			return true
		}
	}
	return false
}

// Count builds the raw term-frequency matrix: one row per term of list, in
// list order, one column per id of docs, in the given order. Each occurrence
// adds 1 to its cell. An occurrence of an id not in docs is an input error.
func Count(list *index.InvertedList, docs []int) (*Matrix, error) {
	docIndex := make(map[int]int, len(docs))
	for j, d := range docs {
		docIndex[d] = j
	}
	entries := list.Entries()
	terms := make([]string, len(entries))
	rows := make([][]Cell, len(entries))
	for i, e := range entries {
		terms[i] = e.Term
		counts := make(map[int]float64)
		for _, id := range e.Occurrences {
			j, ok := docIndex[id]
			if !ok {
				return nil, apperrors.Newf(apperrors.ErrInputFormat, "model", "",
					"term %q occurs in document %d outside the document universe", e.Term, id)
			}
			counts[j]++
		}
		row := make([]Cell, 0, len(counts))
		for j, c := range counts {
			row = append(row, Cell{Col: j, Value: c})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].Col < row[b].Col })
		rows[i] = row
	}
	return newMatrix(terms, append([]int(nil), docs...), rows), nil
}

// Normalize scales tf values into [0,1] along axis.
func Normalize(m *Matrix, axis Axis) (*Matrix, error) {
	switch axis {
	case AxisNone, "":
		return m, nil
	case AxisTerm:
		return m.mapRows(func(_ int, row []Cell) []Cell {
			rowMax := 0.0
			for _, c := range row {
				rowMax = math.Max(rowMax, c.Value)
			}
			return scaleRow(row, func(int) float64 { return rowMax })
		}), nil
	case AxisDocument:
		colMax := make([]float64, m.NumDocs())
		for _, row := range m.rows {
			for _, c := range row {
				colMax[c.Col] = math.Max(colMax[c.Col], c.Value)
			}
		}
		return m.mapRows(func(_ int, row []Cell) []Cell {
			return scaleRow(row, func(col int) float64 { return colMax[col] })
		}), nil
	default:
		return nil, apperrors.Newf(apperrors.ErrConfig, "model", "", "unknown normalization axis %q", axis)
	}
}

func scaleRow(row []Cell, divisor func(col int) float64) []Cell {
	out := make([]Cell, len(row))
	for k, c := range row {
		d := divisor(c.Col)
		out[k] = Cell{Col: c.Col, Value: c.Value / d}
	}
	return out
}

// DocumentFrequency returns, per row, the number of nonzero cells.
func DocumentFrequency(m *Matrix) []int {
	df := make([]int, len(m.rows))
	for i, row := range m.rows {
		n := 0
		for _, c := range row {
			if c.Value != 0 {
				n++
			}
		}
		df[i] = n
	}
	return df
}

// IDF returns log_base(N / df) per row, where N is the number of columns.
// N = 0 is an empty-corpus error; a row with df = 0 is a numeric error.
func IDF(m *Matrix, base float64) ([]float64, error) {
	n := m.NumDocs()
	if n == 0 {
		return nil, apperrors.New(apperrors.ErrEmptyCorpus, "model", "", "cannot compute idf without documents")
	}
	if base <= 1 {
		return nil, apperrors.Newf(apperrors.ErrConfig, "model", "", "idf logarithm base %v must be greater than 1", base)
	}
	logN := func(x float64) float64 { return math.Log(x) / math.Log(base) }
	if base == 10 {
		logN = math.Log10
	}
	df := DocumentFrequency(m)
	idf := make([]float64, len(df))
	for i, d := range df {
		if d == 0 {
			return nil, apperrors.Newf(apperrors.ErrNumeric, "model", "",
				"term %q has document frequency 0", m.terms[i])
		}
		v := logN(float64(n) / float64(d))
		if v < 0 {
			v = 0
		}
		idf[i] = v
	}
	return idf, nil
}

// Weight multiplies every cell of row i by idf[i]. Cells that become zero are
// dropped.
func Weight(m *Matrix, idf []float64) (*Matrix, error) {
	if len(idf) != m.NumTerms() {
		return nil, apperrors.Newf(apperrors.ErrNumeric, "model", "",
			"idf vector has %d entries for %d terms", len(idf), m.NumTerms())
	}
	return m.mapRows(func(i int, row []Cell) []Cell {
		out := make([]Cell, 0, len(row))
		for _, c := range row {
			if w := c.Value * idf[i]; w != 0 {
				out = append(out, Cell{Col: c.Col, Value: w})
			}
		}
		return out
	}), nil
}
