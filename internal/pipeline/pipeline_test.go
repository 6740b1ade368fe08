package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/segment"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/metrics"
)

const testCorpus = `<?xml version="1.0" encoding="UTF-8"?>
<FILE>
  <RECORD><RECORDNUM>1</RECORDNUM><ABSTRACT>The cat and the fish.</ABSTRACT></RECORD>
  <RECORD><RECORDNUM>2</RECORDNUM><ABSTRACT>A cat with a dog</ABSTRACT></RECORD>
  <RECORD><RECORDNUM>3</RECORDNUM><EXTRACT>cat</EXTRACT></RECORD>
</FILE>`

const testQueries = `<FILEQUERY>
  <QUERY>
    <QueryNumber>1</QueryNumber>
    <QueryText>Where is the dog?</QueryText>
    <Records>
      <Item score="0001">3</Item>
      <Item score="2222">2</Item>
    </Records>
  </QUERY>
  <QUERY>
    <QueryNumber>2</QueryNumber>
    <QueryText>Unicorn;   horn</QueryText>
  </QUERY>
</FILEQUERY>`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// setup lays out stage files, a corpus and a query file under a temp dir.
func setup(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.PathsConfig{
		ConfigDir: dir,
		DataDir:   filepath.Join(dir, "data"),
		ResultDir: filepath.Join(dir, "result"),
	}

	writeFile(t, filepath.Join(dir, "GLI.CFG"), "LEIA=cf74.xml\nESCREVA=lista.csv\n")
	writeFile(t, filepath.Join(dir, "INDEX.CFG"), "LEIA=lista.csv\nESCREVA=modelo.csv\n")
	writeFile(t, filepath.Join(dir, "PC.CFG"), "LEIA=cfquery.xml\nCONSULTAS=consultas.csv\nESPERADOS=esperados.csv\n")
	writeFile(t, filepath.Join(dir, "BUSCA.CFG"), "MODELO=modelo.csv\nCONSULTAS=consultas.csv\nRESULTADOS=resultados.csv\n")
	writeFile(t, cfg.DataPath("cf74.xml"), testCorpus)
	writeFile(t, cfg.DataPath("cfquery.xml"), testQueries)
	return cfg
}

func TestRunAll(t *testing.T) {
	cfg := setup(t)
	m := metrics.New()
	p := New(cfg, m, logger.Discard())

	ctx := logger.WithRunID(context.Background(), "test-run")
	require.NoError(t, p.RunAll(ctx))

	assert.Equal(t,
		"WORD;APPEARENCE\nCAT;[1, 2, 3]\nFISH;[1]\nDOG;[2]\n",
		readFile(t, cfg.ResultPath("lista.csv")))

	model, err := segment.ReadModel(cfg.ResultPath("modelo.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"CAT", "FISH", "DOG"}, model.Weights.Terms())
	assert.Equal(t, []int{1, 2, 3}, model.Weights.Documents())
	idf, ok := model.TermIDF("CAT")
	require.True(t, ok)
	assert.Equal(t, 0.0, idf)

	assert.Equal(t,
		"QueryNumber;QueryText\n1;WHERE IS THE DOG?\n2;UNICORN HORN\n",
		readFile(t, cfg.ResultPath("consultas.csv")))
	assert.Equal(t,
		"QueryNumber;DocsRankInfo\n1;[1, 2, 8]\n1;[2, 3, 1]\n",
		readFile(t, cfg.ResultPath("esperados.csv")))
	assert.Equal(t,
		"QueryNumber;DocsRankInfo\n1;[1, 2, 1.0]\n",
		readFile(t, cfg.ResultPath("resultados.csv")))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DocumentsRead))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.TermsKept))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.QueriesProcessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesRanked.WithLabelValues("zero_result")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageRunsTotal.WithLabelValues(StageSearch, "success")))
}

func TestRunAllIsDeterministic(t *testing.T) {
	cfg := setup(t)
	p := New(cfg, nil, logger.Discard())

	require.NoError(t, p.RunAll(context.Background()))
	first := readFile(t, cfg.ResultPath("modelo.csv"))
	require.NoError(t, p.RunAll(context.Background()))
	assert.Equal(t, first, readFile(t, cfg.ResultPath("modelo.csv")))
}

func TestRunIndexRepeatedRecordAcrossFiles(t *testing.T) {
	cfg := setup(t)
	writeFile(t, cfg.StagePath("GLI.CFG"), "LEIA=a.xml\nLEIA=b.xml\nESCREVA=lista.csv\n")
	writeFile(t, cfg.DataPath("a.xml"), `<FILE>
  <RECORD><RECORDNUM>1</RECORDNUM><ABSTRACT>cat</ABSTRACT></RECORD>
  <RECORD><RECORDNUM>2</RECORDNUM><ABSTRACT>fish</ABSTRACT></RECORD>
</FILE>`)
	writeFile(t, cfg.DataPath("b.xml"), `<FILE>
  <RECORD><RECORDNUM>1</RECORDNUM><ABSTRACT>cat</ABSTRACT></RECORD>
  <RECORD><RECORDNUM>1</RECORDNUM><ABSTRACT>dog</ABSTRACT></RECORD>
</FILE>`)
	m := metrics.New()

	require.NoError(t, New(cfg, m, logger.Discard()).RunIndex(context.Background()))
	assert.Equal(t,
		"WORD;APPEARENCE\nDOG;[1]\nFISH;[2]\n",
		readFile(t, cfg.ResultPath("lista.csv")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DocumentsRead))
}

func TestRunIndexMissingCorpus(t *testing.T) {
	cfg := setup(t)
	require.NoError(t, os.Remove(cfg.DataPath("cf74.xml")))
	m := metrics.New()

	err := New(cfg, m, logger.Discard()).RunAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.Contains(t, err.Error(), "cf74.xml")
	assert.Equal(t, 1, apperrors.ExitCode(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageRunsTotal.WithLabelValues(StageIndex, "io")))

	_, statErr := os.Stat(cfg.ResultPath("modelo.csv"))
	assert.True(t, os.IsNotExist(statErr), "later stages must not run")
}

func TestRunModelMissingKey(t *testing.T) {
	cfg := setup(t)
	writeFile(t, cfg.StagePath("INDEX.CFG"), "LEIA=lista.csv\n")

	err := New(cfg, nil, logger.Discard()).RunModel(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrConfig)
	assert.Contains(t, err.Error(), "ESCREVA")
}

func TestRunModelEmptyList(t *testing.T) {
	cfg := setup(t)
	writeFile(t, cfg.ResultPath("lista.csv"), "WORD;APPEARENCE\n")

	err := New(cfg, nil, logger.Discard()).RunModel(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrEmptyCorpus)
	assert.ErrorIs(t, err, apperrors.ErrInputFormat)
}

func TestRunQueriesRejectsInvalidQueries(t *testing.T) {
	cfg := setup(t)
	writeFile(t, cfg.DataPath("cfquery.xml"),
		`<FILEQUERY><QUERY><QueryNumber>1</QueryNumber><QueryText>a</QueryText></QUERY>`+
			`<QUERY><QueryNumber>1</QueryNumber><QueryText>b</QueryText></QUERY></FILEQUERY>`)

	err := New(cfg, nil, logger.Discard()).RunQueries(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInputFormat)
	assert.Contains(t, err.Error(), "duplicate query number 1")
}

func TestRunSearchMissingModel(t *testing.T) {
	cfg := setup(t)
	err := New(cfg, nil, logger.Discard()).RunSearch(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrIO)
}

func TestRunAllCancelled(t *testing.T) {
	cfg := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, New(cfg, nil, logger.Discard()).RunAll(ctx), context.Canceled)
}
