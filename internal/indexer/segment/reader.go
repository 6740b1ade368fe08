package segment

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// OpenFile opens path for reading, mapping failures to an I/O error of stage.
func OpenFile(stage, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	return f, nil
}

// ReadModel loads a vector model file from path.
func ReadModel(path string) (*matrix.Model, error) {
	f, err := OpenFile("search", path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeModel(f, path)
}

// DecodeModel parses a vector model written by EncodeModel. name identifies
// the source in errors. The header must list unique positive document ids
// followed by the idf column; every row must have one term, one non-negative
// weight per document and a non-negative idf.
func DecodeModel(r io.Reader, name string) (*matrix.Model, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	fail := func(format string, args ...any) error {
		return apperrors.Newf(apperrors.ErrInputFormat, "search", name, format, args...)
	}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrIO, "search", name, err)
		}
		return nil, fail("missing header")
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r"), Separator)
	if len(header) < 2 || header[len(header)-1] != IDFColumn {
		return nil, fail("header must end with the %q column", IDFColumn)
	}
	docs := make([]int, 0, len(header)-2)
	seenDocs := make(map[int]struct{}, len(header)-2)
	for _, cell := range header[1 : len(header)-1] {
		id, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil || id <= 0 {
			return nil, fail("header cell %q is not a positive document id", cell)
		}
		if _, dup := seenDocs[id]; dup {
			return nil, fail("document %d repeated in header", id)
		}
		seenDocs[id] = struct{}{}
		docs = append(docs, id)
	}

	var terms []string
	var rows [][]matrix.Cell
	var idf []float64
	seenTerms := make(map[string]struct{})
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, Separator)
		if len(cells) != len(header) {
			return nil, fail("line %d: %d cells, header has %d", lineNo, len(cells), len(header))
		}
		term := cells[0]
		if term == "" {
			return nil, fail("line %d: empty term", lineNo)
		}
		if _, dup := seenTerms[term]; dup {
			return nil, fail("line %d: duplicate term %q", lineNo, term)
		}
		seenTerms[term] = struct{}{}

		var row []matrix.Cell
		for j, cell := range cells[1 : len(cells)-1] {
			v, err := parseWeight(cell)
			if err != nil {
				return nil, fail("line %d, document %d: %v", lineNo, docs[j], err)
			}
			if v != 0 {
				row = append(row, matrix.Cell{Col: j, Value: v})
			}
		}
		termIDF, err := parseWeight(cells[len(cells)-1])
		if err != nil {
			return nil, fail("line %d, idf: %v", lineNo, err)
		}
		terms = append(terms, term)
		rows = append(rows, row)
		idf = append(idf, termIDF)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, "search", name, err)
	}
	return matrix.NewModel(matrix.FromRows(terms, docs, rows), idf)
}

func parseWeight(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%q is not a finite non-negative number", cell)
	}
	return v, nil
}
