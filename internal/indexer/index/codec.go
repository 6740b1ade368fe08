package index

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// Header is the first line of an inverted-list file.
const Header = "WORD;APPEARENCE"

// Encode writes the list as a header followed by one "TERM;[id, id, ...]"
// row per term, in list order.
func (l *InvertedList) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return err
	}
	var sb strings.Builder
	for pair := l.terms.Oldest(); pair != nil; pair = pair.Next() {
		sb.Reset()
		sb.WriteString(pair.Key)
		sb.WriteString(";")
		sb.WriteString(FormatOccurrences(pair.Value))
		sb.WriteString("\n")
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatOccurrences renders ids as "[1, 2, 2]".
func FormatOccurrences(ids []int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(id))
	}
	sb.WriteByte(']')
	return sb.String()
}

// ParseOccurrences parses "[1, 2, 2]". Every element must be a positive
// decimal integer; "[]" is an empty sequence.
func ParseOccurrences(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, apperrors.Newf(apperrors.ErrInputFormat, "", "", "occurrence list %q is not bracketed", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []int{}, nil
	}
	parts := strings.Split(inner, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "", "", "occurrence %q is not an integer", strings.TrimSpace(part))
		}
		if id <= 0 {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "", "", "document id %d is not positive", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Decode reads an inverted-list file. name identifies the source in errors.
// The first line is a header and is skipped whatever it says. Every other
// row must have a non-empty term and a valid occurrence list, and a term may
// appear only once.
func Decode(r io.Reader, name string) (*InvertedList, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrIO, "model", name, err)
		}
		return nil, apperrors.New(apperrors.ErrInputFormat, "model", name, "missing header")
	}

	l := newList()
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		term, list, ok := strings.Cut(line, ";")
		if !ok || term == "" {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "model", name, "line %d: expected TERM;[ids]", lineNo)
		}
		ids, err := ParseOccurrences(list)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "model", name, "line %d: %v", lineNo, err)
		}
		if _, dup := l.terms.Get(term); dup {
			return nil, apperrors.Newf(apperrors.ErrInputFormat, "model", name, "line %d: duplicate term %q", lineNo, term)
		}
		l.terms.Set(term, ids)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrIO, "model", name, err)
	}
	return l, nil
}
