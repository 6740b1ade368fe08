package ingestion

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Corpus accumulates records across corpus files. A record number seen
// again, in the same file or a later one, keeps its first position and
// takes the newer text.
type Corpus struct {
	records  []Record
	position map[int]int
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{position: make(map[int]int)}
}

// Add merges records into c in order and returns how many of them replaced
// the text of a number already present.
func (c *Corpus) Add(records ...Record) int {
	replaced := 0
	for _, r := range records {
		if i, seen := c.position[r.Number]; seen {
			c.records[i].Text = r.Text
			replaced++
			continue
		}
		c.position[r.Number] = len(c.records)
		c.records = append(c.records, r)
	}
	return replaced
}

// Records returns the merged records in first-seen order.
func (c *Corpus) Records() []Record {
	return c.records
}

// Len returns the number of distinct record numbers.
func (c *Corpus) Len() int {
	return len(c.records)
}

// ReadCorpus collects every RECORD element, at any depth, from r. A record
// number seen twice keeps its first position and its last text. name
// identifies the source in errors.
func ReadCorpus(r io.Reader, name string) ([]Record, error) {
	corpus := NewCorpus()
	err := eachElement(r, "RECORD", func(dec *xml.Decoder, start xml.StartElement) error {
		var raw xmlRecord
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return err
		}
		num, err := strconv.Atoi(strings.TrimSpace(raw.RecordNum))
		if err != nil {
			return apperrors.Newf(apperrors.ErrInputFormat, "index", name, "RECORDNUM %q is not an integer", raw.RecordNum)
		}
		text := ""
		switch {
		case raw.Abstract != nil:
			text = *raw.Abstract
		case raw.Extract != nil:
			text = *raw.Extract
		}
		corpus.Add(Record{Number: num, Text: text})
		return nil
	})
	if err != nil {
		return nil, wrapXMLError("index", name, err)
	}
	return corpus.Records(), nil
}

// ReadQueries collects every QUERY element from r in document order.
func ReadQueries(r io.Reader, name string) ([]Query, error) {
	var queries []Query
	err := eachElement(r, "QUERY", func(dec *xml.Decoder, start xml.StartElement) error {
		var raw xmlQuery
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return err
		}
		num, err := strconv.Atoi(strings.TrimSpace(raw.QueryNumber))
		if err != nil {
			return apperrors.Newf(apperrors.ErrInputFormat, "queries", name, "QueryNumber %q is not an integer", raw.QueryNumber)
		}
		q := Query{Number: num, Text: raw.QueryText}
		for _, item := range raw.Items {
			doc, err := strconv.Atoi(strings.TrimSpace(item.Doc))
			if err != nil {
				return apperrors.Newf(apperrors.ErrInputFormat, "queries", name,
					"query %d: document %q is not an integer", num, item.Doc)
			}
			q.Expected = append(q.Expected, ExpectedItem{DocNumber: doc, Score: strings.TrimSpace(item.Score)})
		}
		queries = append(queries, q)
		return nil
	})
	if err != nil {
		return nil, wrapXMLError("queries", name, err)
	}
	return queries, nil
}

func eachElement(r io.Reader, local string, fn func(*xml.Decoder, xml.StartElement) error) error {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == local {
			if err := fn(dec, start); err != nil {
				return err
			}
		}
	}
}

func wrapXMLError(stage, name string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	var syntaxErr *xml.SyntaxError
	var unmarshalErr xml.UnmarshalError
	if errors.As(err, &syntaxErr) || errors.As(err, &unmarshalErr) {
		return apperrors.Wrap(apperrors.ErrInputFormat, stage, name, err)
	}
	return apperrors.Wrap(apperrors.ErrIO, stage, name, err)
}
