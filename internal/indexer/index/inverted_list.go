// Package index holds the inverted list: for every vocabulary term, the
// ordered sequence of document ids the term occurs in, one entry per
// occurrence. Term order is the order terms were first seen, so everything
// derived from a list is deterministic.
package index

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/internal/indexer/tokenizer"
)

// InvertedList maps Term to its document-id occurrence sequence. A list is
// populated once, by a Builder or by Decode, and read-only afterwards.
type InvertedList struct {
	terms *orderedmap.OrderedMap[string, []int]
}

// Entry is one term with its occurrence sequence.
type Entry struct {
	Term        string
	Occurrences []int
}

func newList() *InvertedList {
	return &InvertedList{terms: orderedmap.New[string, []int]()}
}

// FromEntries builds a list from entries in the given order. Later entries
// for a repeated term are appended to the earlier sequence.
func FromEntries(entries ...Entry) *InvertedList {
	l := newList()
	for _, e := range entries {
		prev, _ := l.terms.Get(e.Term)
		l.terms.Set(e.Term, append(prev, e.Occurrences...))
	}
	return l
}

// Len returns the number of terms.
func (l *InvertedList) Len() int {
	return l.terms.Len()
}

// Occurrences returns a copy of term's occurrence sequence.
func (l *InvertedList) Occurrences(term string) ([]int, bool) {
	docs, ok := l.terms.Get(term)
	if !ok {
		return nil, false
	}
	return append([]int(nil), docs...), true
}

// Entries returns every term with its occurrences, in list order. The
// occurrence slices are copies.
func (l *InvertedList) Entries() []Entry {
	entries := make([]Entry, 0, l.terms.Len())
	for pair := l.terms.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, Entry{
			Term:        pair.Key,
			Occurrences: append([]int(nil), pair.Value...),
		})
	}
	return entries
}

// Terms returns the terms in list order.
func (l *InvertedList) Terms() []string {
	terms := make([]string, 0, l.terms.Len())
	for pair := l.terms.Oldest(); pair != nil; pair = pair.Next() {
		terms = append(terms, pair.Key)
	}
	return terms
}

// DocumentIDs returns the ascending, de-duplicated union of every document id
// in the list.
func (l *InvertedList) DocumentIDs() []int {
	seen := make(map[int]struct{})
	for pair := l.terms.Oldest(); pair != nil; pair = pair.Next() {
		for _, id := range pair.Value {
			seen[id] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Builder accumulates documents into an inverted list.
type Builder struct {
	list     *InvertedList
	docCount int
}

func NewBuilder() *Builder {
	return &Builder{list: newList()}
}

// AddDocument tokenizes text and appends docID to the sequence of every
// surviving token, once per occurrence.
func (b *Builder) AddDocument(docID int, text string) {
	for _, token := range tokenizer.Tokenize(text) {
		docs, _ := b.list.terms.Get(token.Term)
		b.list.terms.Set(token.Term, append(docs, docID))
	}
	b.docCount++
}

// DocCount returns the number of documents added.
func (b *Builder) DocCount() int {
	return b.docCount
}

// Build returns the accumulated list and resets the builder.
func (b *Builder) Build() *InvertedList {
	list := b.list
	b.list = newList()
	b.docCount = 0
	return list
}
