package ingestion

import (
	"sort"
)

// Votes sums the digits of a four-character assessor score such as "2212".
// Scores of any other length count as no votes. Non-digit characters are
// rejected by the validator before this is called.
func Votes(score string) int {
	if len(score) != 4 {
		return 0
	}
	total := 0
	for _, r := range score {
		if r >= '0' && r <= '9' {
			total += int(r - '0')
		}
	}
	return total
}

// RankExpected orders a query's relevant documents by votes, descending.
// Documents with equal votes keep the order the query file lists them in.
func RankExpected(q Query) []ExpectedDoc {
	docs := make([]ExpectedDoc, len(q.Expected))
	for i, item := range q.Expected {
		docs[i] = ExpectedDoc{DocNumber: item.DocNumber, Votes: Votes(item.Score)}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Votes > docs[j].Votes
	})
	return docs
}
