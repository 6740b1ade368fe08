package segment

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/matrix"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

func sampleModel(t *testing.T) *matrix.Model {
	t.Helper()
	l3 := math.Log10(3)
	w := matrix.New(
		[]string{"CAT", "DOG", "FISH"},
		[]int{1, 2, 3},
		[][]float64{{0, 0, 0}, {0, l3, 0}, {l3, 0, 0}},
	)
	model, err := matrix.NewModel(w, []float64{0, l3, l3})
	require.NoError(t, err)
	return model
}

func TestEncodeModelLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeModel(&buf, sampleModel(t)))

	l3 := FormatFloat(math.Log10(3))
	want := ";1;2;3;idf\n" +
		"CAT;0;0;0;0\n" +
		"DOG;0;" + l3 + ";0;" + l3 + "\n" +
		"FISH;" + l3 + ";0;0;" + l3 + "\n"
	assert.Equal(t, want, buf.String())
}

func TestModelRoundTrip(t *testing.T) {
	model := sampleModel(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeModel(&buf, model))

	decoded, err := DecodeModel(&buf, "model.csv")
	require.NoError(t, err)
	assert.Equal(t, model.Weights.Terms(), decoded.Weights.Terms())
	assert.Equal(t, model.Weights.Documents(), decoded.Weights.Documents())
	assert.Equal(t, model.IDFVector(), decoded.IDFVector())
	for i := 0; i < model.Weights.NumTerms(); i++ {
		assert.Equal(t, model.Weights.DenseRow(i), decoded.Weights.DenseRow(i))
	}
}

func TestDecodeModelRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no idf column", ";1;2\nCAT;0;1\n"},
		{"bad doc id", ";1;x;idf\nCAT;0;1;1\n"},
		{"repeated doc", ";1;1;idf\nCAT;0;1;1\n"},
		{"short row", ";1;2;idf\nCAT;0;1\n"},
		{"empty term", ";1;2;idf\n;0;1;1\n"},
		{"duplicate term", ";1;2;idf\nCAT;0;1;1\nCAT;0;1;1\n"},
		{"negative weight", ";1;2;idf\nCAT;0;-1;1\n"},
		{"nan weight", ";1;2;idf\nCAT;0;NaN;1\n"},
		{"text idf", ";1;2;idf\nCAT;0;1;high\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModel(strings.NewReader(tt.input), "model.csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInputFormat)
		})
	}
}

func TestWriteFileIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "model.csv")

	require.NoError(t, WriteFile("model", path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first\n")
		return err
	}))

	err := WriteFile("model", path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("disk full")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIO)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "first\n", string(data))

	entries, readErr := os.ReadDir(filepath.Dir(path))
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestReadModelMissingFile(t *testing.T) {
	_, err := ReadModel(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, apperrors.ErrIO)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(0))
	assert.Equal(t, "1", FormatFloat(1))
	assert.Equal(t, "0.25", FormatFloat(0.25))
}
