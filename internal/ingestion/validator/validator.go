// Package validator checks corpus records and queries after parsing. It
// enforces positive ids and well-formed assessor scores and returns
// per-field error details.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/ingestion"
	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

// ValidationError holds per-field validation failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInputFormat
}

// ValidateRecords checks that every record number is positive.
func ValidateRecords(records []ingestion.Record) error {
	errs := make(map[string]string)
	for i, r := range records {
		if r.Number <= 0 {
			errs[fmt.Sprintf("record[%d].RECORDNUM", i)] = fmt.Sprintf("must be positive, got %d", r.Number)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// ValidateQueries checks query numbers are positive and unique, relevant
// document numbers are positive, and four-character scores are all digits.
func ValidateQueries(queries []ingestion.Query) error {
	errs := make(map[string]string)
	seen := make(map[int]struct{}, len(queries))
	for i, q := range queries {
		field := fmt.Sprintf("query[%d]", i)
		if q.Number <= 0 {
			errs[field+".QueryNumber"] = fmt.Sprintf("must be positive, got %d", q.Number)
		} else if _, dup := seen[q.Number]; dup {
			errs[field+".QueryNumber"] = fmt.Sprintf("duplicate query number %d", q.Number)
		}
		seen[q.Number] = struct{}{}
		if strings.TrimSpace(q.Text) == "" {
			errs[field+".QueryText"] = "query text is required"
		}
		for j, item := range q.Expected {
			itemField := fmt.Sprintf("%s.Item[%d]", field, j)
			if item.DocNumber <= 0 {
				errs[itemField] = fmt.Sprintf("document must be positive, got %d", item.DocNumber)
			}
			if len(item.Score) == 4 && strings.Trim(item.Score, "0123456789") != "" {
				errs[itemField+".score"] = fmt.Sprintf("score %q must be four digits", item.Score)
			}
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
