package indexer

import (
	"fmt"
	"regexp"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/index"
)

// VocabularyFilter decides which terms of an inverted list become rows of
// the vector model.
type VocabularyFilter interface {
	Keep(term string) bool
}

// AlphaFilter keeps terms made only of the letters A-Z with at least
// MinLength of them.
type AlphaFilter struct {
	MinLength int
	pattern   *regexp.Regexp
}

// NewAlphaFilter returns a filter for minLength or more letters. Values
// below 1 are raised to 1.
func NewAlphaFilter(minLength int) *AlphaFilter {
	if minLength < 1 {
		minLength = 1
	}
	return &AlphaFilter{
		MinLength: minLength,
		pattern:   regexp.MustCompile(fmt.Sprintf(`^[A-Z]{%d,}$`, minLength)),
	}
}

// Keep reports whether term is uppercase ASCII letters only and long enough.
func (f *AlphaFilter) Keep(term string) bool {
	return f.pattern.MatchString(term)
}

// FilterFunc adapts a plain predicate to VocabularyFilter.
type FilterFunc func(term string) bool

// Keep calls f.
func (f FilterFunc) Keep(term string) bool { return f(term) }

// Partition splits list into the entries filter keeps, as a new list in the
// same order, and the terms it discards.
func Partition(list *index.InvertedList, filter VocabularyFilter) (*index.InvertedList, []string) {
	var kept []index.Entry
	var discarded []string
	for _, e := range list.Entries() {
		if filter.Keep(e.Term) {
			kept = append(kept, e)
		} else {
			discarded = append(discarded, e.Term)
		}
	}
	return index.FromEntries(kept...), discarded
}
