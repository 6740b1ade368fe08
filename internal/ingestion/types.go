// Package ingestion reads the XML document corpus and the XML query
// collection into typed records.
package ingestion

// Record is one corpus document: its number and the text that gets indexed
// (the abstract, or the extract when there is no abstract).
type Record struct {
	Number int
	Text   string
}

// ExpectedItem is one relevant document listed for a query, with the raw
// four-digit relevance score given by the assessors.
type ExpectedItem struct {
	DocNumber int
	Score     string
}

// Query is one entry of the query collection.
type Query struct {
	Number   int
	Text     string
	Expected []ExpectedItem
}

// ExpectedDoc is a relevant document with its vote count.
type ExpectedDoc struct {
	DocNumber int
	Votes     int
}

type xmlRecord struct {
	RecordNum string  `xml:"RECORDNUM"`
	Abstract  *string `xml:"ABSTRACT"`
	Extract   *string `xml:"EXTRACT"`
}

type xmlQuery struct {
	QueryNumber string    `xml:"QueryNumber"`
	QueryText   string    `xml:"QueryText"`
	Items       []xmlItem `xml:"Records>Item"`
}

type xmlItem struct {
	Score string `xml:"score,attr"`
	Doc   string `xml:",chardata"`
}
