package executor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Header is the first line of ranked-result and expected-result files.
const Header = "QueryNumber;DocsRankInfo"

// RankRow is one "q;[rank, docId, value]" line. Value is a score for
// ranked results and a vote count for expected results.
type RankRow struct {
	QueryNumber int
	Rank        int
	DocID       int
	Value       string
}

// FormatScore renders a similarity score as the shortest round-trip decimal,
// always with a fractional part ("1.0", not "1").
func FormatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// ResultRows flattens query results into rows, in query then rank order.
func ResultRows(results []QueryResult) []RankRow {
	var rows []RankRow
	for _, qr := range results {
		for _, r := range qr.Results {
			rows = append(rows, RankRow{
				QueryNumber: qr.QueryNumber,
				Rank:        r.Rank,
				DocID:       r.DocID,
				Value:       FormatScore(r.Score),
			})
		}
	}
	return rows
}

// WriteRankRows writes the header followed by one line per row.
func WriteRankRows(w io.Writer, rows []RankRow) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%d;[%d, %d, %s]\n", r.QueryNumber, r.Rank, r.DocID, r.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadRankRows parses a file written by WriteRankRows. name identifies the
// source in errors.
func ReadRankRows(r io.Reader, name string) ([]RankRow, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrIO, "search", name, err)
		}
		return nil, apperrors.New(apperrors.ErrInputFormat, "search", name, "missing header")
	}
	if got := strings.TrimSpace(scanner.Text()); got != Header {
		return nil, apperrors.Newf(apperrors.ErrInputFormat, "search", name, "header %q, want %q", got, Header)
	}

	var rows []RankRow
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, err := parseRankRow(line)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "search", name, "line %d: %v", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, "search", name, err)
	}
	return rows, nil
}

func parseRankRow(line string) (RankRow, error) {
	numText, info, ok := strings.Cut(line, ";")
	if !ok {
		return RankRow{}, fmt.Errorf("expected QueryNumber;DocsRankInfo")
	}
	q, err := strconv.Atoi(strings.TrimSpace(numText))
	if err != nil {
		return RankRow{}, fmt.Errorf("query number %q: %w", numText, err)
	}
	info = strings.TrimSpace(info)
	if !strings.HasPrefix(info, "[") || !strings.HasSuffix(info, "]") {
		return RankRow{}, fmt.Errorf("rank info %q is not bracketed", info)
	}
	parts := strings.Split(info[1:len(info)-1], ",")
	if len(parts) != 3 {
		return RankRow{}, fmt.Errorf("rank info %q: want 3 fields, got %d", info, len(parts))
	}
	rank, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return RankRow{}, fmt.Errorf("rank %q: %w", parts[0], err)
	}
	doc, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return RankRow{}, fmt.Errorf("document %q: %w", parts[1], err)
	}
	return RankRow{QueryNumber: q, Rank: rank, DocID: doc, Value: strings.TrimSpace(parts[2])}, nil
}
