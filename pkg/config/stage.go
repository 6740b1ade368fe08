package config

import (
	"bufio"
	"os"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Stage file keys.
const (
	KeyRead     = "LEIA"
	KeyWrite    = "ESCREVA"
	KeyQueries  = "CONSULTAS"
	KeyExpected = "ESPERADOS"
	KeyModel    = "MODELO"
	KeyResults  = "RESULTADOS"
)

// StageFile is the parsed content of a KEY=VALUE stage file. Values keep the
// order they appeared in, so repeated keys are preserved.
type StageFile struct {
	Path   string
	values map[string][]string
}

// IndexStage names the corpus files read and the inverted list written by
// the inverted-list generator.
type IndexStage struct {
	Read  []string
	Write string
}

// ModelStage names the inverted list read and the vector model written by
// the vector model builder.
type ModelStage struct {
	Read  string
	Write string
}

// QueryStage names the query corpus read and the processed-query and
// expected-result files written by the query processor.
type QueryStage struct {
	Read     string
	Queries  string
	Expected string
}

// SearchStage names the model and processed queries read and the ranked
// results written by the search stage.
type SearchStage struct {
	Model   string
	Queries string
	Results string
}

// ReadStageFile parses a KEY=VALUE file. Blank lines are skipped; any other
// line must contain '=' with a non-empty key. Values are trimmed.
func ReadStageFile(path string) (*StageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConfig, "config", path, err)
	}
	defer f.Close()

	sf := &StageFile{Path: path, values: make(map[string][]string)}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, apperrors.Newf(apperrors.ErrConfig, "config", path,
				"line %d: expected KEY=VALUE, got %q", lineNo, line)
		}
		sf.values[key] = append(sf.values[key], strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, "config", path, err)
	}
	return sf, nil
}

// All returns every value given for key, in file order.
func (s *StageFile) All(key string) []string {
	return s.values[key]
}

// Get returns the last value given for key.
func (s *StageFile) Get(key string) (string, bool) {
	vs := s.values[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// Require returns the last non-empty value for key or a config error naming
// the file and key.
func (s *StageFile) Require(key string) (string, error) {
	v, ok := s.Get(key)
	if !ok || v == "" {
		return "", apperrors.Newf(apperrors.ErrConfig, "config", s.Path, "missing required key %s", key)
	}
	return v, nil
}

// IndexStage extracts the inverted-list generator settings.
func (s *StageFile) IndexStage() (IndexStage, error) {
	reads := make([]string, 0, len(s.All(KeyRead)))
	for _, v := range s.All(KeyRead) {
		if v != "" {
			reads = append(reads, v)
		}
	}
	if len(reads) == 0 {
		return IndexStage{}, apperrors.Newf(apperrors.ErrConfig, "config", s.Path, "missing required key %s", KeyRead)
	}
	write, err := s.Require(KeyWrite)
	if err != nil {
		return IndexStage{}, err
	}
	return IndexStage{Read: reads, Write: write}, nil
}

// ModelStage extracts the vector model builder settings.
func (s *StageFile) ModelStage() (ModelStage, error) {
	read, err := s.Require(KeyRead)
	if err != nil {
		return ModelStage{}, err
	}
	write, err := s.Require(KeyWrite)
	if err != nil {
		return ModelStage{}, err
	}
	return ModelStage{Read: read, Write: write}, nil
}

// QueryStage extracts the query processor settings.
func (s *StageFile) QueryStage() (QueryStage, error) {
	var qs QueryStage
	var err error
	if qs.Read, err = s.Require(KeyRead); err != nil {
		return QueryStage{}, err
	}
	if qs.Queries, err = s.Require(KeyQueries); err != nil {
		return QueryStage{}, err
	}
	if qs.Expected, err = s.Require(KeyExpected); err != nil {
		return QueryStage{}, err
	}
	return qs, nil
}

// SearchStage extracts the search stage settings.
func (s *StageFile) SearchStage() (SearchStage, error) {
	var ss SearchStage
	var err error
	if ss.Model, err = s.Require(KeyModel); err != nil {
		return SearchStage{}, err
	}
	if ss.Queries, err = s.Require(KeyQueries); err != nil {
		return SearchStage{}, err
	}
	if ss.Results, err = s.Require(KeyResults); err != nil {
		return SearchStage{}, err
	}
	return ss, nil
}
