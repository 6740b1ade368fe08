// Package parser reads and writes the processed-query file and turns a
// processed query into the token list the ranker scores.
package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Header is the first line of a processed-query file.
const Header = "QueryNumber;QueryText"

// Query is a processed query: its number and cleaned, upper-cased text.
type Query struct {
	Number int
	Text   string
}

// QueryPlan is what the ranker consumes: the query number and its
// normalized tokens.
type QueryPlan struct {
	Number int
	Terms  []string
	Raw    string
}

// CleanText removes ';', collapses whitespace runs to one space and
// upper-cases the result.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, ";", "")
	return strings.ToUpper(strings.Join(strings.Fields(text), " "))
}

// Parse tokenizes a processed query. Terms keep their order and repetitions;
// the ranker only looks at presence.
func Parse(q Query) *QueryPlan {
	return &QueryPlan{
		Number: q.Number,
		Terms:  tokenizer.Terms(q.Text),
		Raw:    q.Text,
	}
}

// Encode writes the header and one "number;text" row per query. Text is
// cleaned on the way out.
func Encode(w io.Writer, queries []Query) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, q := range queries {
		if _, err := bw.WriteString(strconv.Itoa(q.Number) + ";" + CleanText(q.Text) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode reads a processed-query file. name identifies the source in errors.
func Decode(r io.Reader, name string) ([]Query, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrIO, "search", name, err)
		}
		return nil, apperrors.New(apperrors.ErrInputFormat, "search", name, "missing header")
	}
	if got := strings.TrimSpace(scanner.Text()); got != Header {
		return nil, apperrors.Newf(apperrors.ErrInputFormat, "search", name, "header %q, want %q", got, Header)
	}

	var queries []Query
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		numText, text, ok := strings.Cut(line, ";")
		if !ok {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "search", name, "line %d: expected QueryNumber;QueryText", lineNo)
		}
		num, err := strconv.Atoi(strings.TrimSpace(numText))
		if err != nil || num <= 0 {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "search", name, "line %d: query number %q is not a positive integer", lineNo, numText)
		}
		queries = append(queries, Query{Number: num, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, "search", name, err)
	}
	return queries, nil
}
