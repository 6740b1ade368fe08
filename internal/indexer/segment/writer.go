// Package segment persists pipeline artifacts as flat ';'-delimited files.
// Every file is written to a temporary sibling, synced and renamed, so a
// failed stage never leaves a partial output behind.
package segment

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// IDFColumn labels the idf column of a vector model file.
const IDFColumn = "idf"

// Separator delimits cells in every pipeline file.
const Separator = ";"

// WriteFile atomically creates path with the content produced by encode. The
// parent directory is created if needed.
func WriteFile(stage, path string, encode func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrIO, stage, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := encode(bw); err != nil {
		if apperrors.Is(err, apperrors.ErrInputFormat) || apperrors.Is(err, apperrors.ErrNumeric) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	if err := bw.Flush(); err != nil {
		return apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	if err := tmp.Sync(); err != nil {
		return apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return apperrors.Wrap(apperrors.ErrIO, stage, path, err)
	}
	committed = true
	return nil
}

// FormatFloat renders v as the shortest decimal that parses back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeModel writes a vector model: a header of ";" + document ids + "idf",
// then one row per term with its weight in every document column and its idf.
func EncodeModel(w io.Writer, model *matrix.Model) error {
	weights := model.Weights
	bw := bufio.NewWriter(w)

	header := make([]string, 0, weights.NumDocs()+2)
	header = append(header, "")
	for _, d := range weights.Documents() {
		header = append(header, strconv.Itoa(d))
	}
	header = append(header, IDFColumn)
	if _, err := bw.WriteString(strings.Join(header, Separator) + "\n"); err != nil {
		return err
	}

	cells := make([]string, weights.NumDocs()+2)
	for i := 0; i < weights.NumTerms(); i++ {
		cells[0] = weights.Term(i)
		for j, v := range weights.DenseRow(i) {
			cells[j+1] = FormatFloat(v)
		}
		cells[len(cells)-1] = FormatFloat(model.IDF(i))
		if _, err := bw.WriteString(strings.Join(cells, Separator) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
