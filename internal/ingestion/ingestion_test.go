package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/vector-space-retrieval/pkg/errors"
)

const corpusXML = `<?xml version="1.0" encoding="UTF-8"?>
<FILE>
  <RECORD>
    <PAPERNUM>PN74001</PAPERNUM>
    <RECORDNUM>00002 </RECORDNUM>
    <ABSTRACT>Cystic fibrosis of the pancreas.</ABSTRACT>
  </RECORD>
  <RECORD>
    <RECORDNUM>1</RECORDNUM>
    <EXTRACT>Sweat test extract.</EXTRACT>
  </RECORD>
  <RECORD>
    <RECORDNUM>3</RECORDNUM>
    <TITLE>No abstract here</TITLE>
  </RECORD>
  <RECORD>
    <RECORDNUM>2</RECORDNUM>
    <ABSTRACT>Replaced text.</ABSTRACT>
    <EXTRACT>Ignored extract.</EXTRACT>
  </RECORD>
</FILE>`

func TestReadCorpus(t *testing.T) {
	records, err := ReadCorpus(strings.NewReader(corpusXML), "cf74.xml")
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Number: 2, Text: "Replaced text."},
		{Number: 1, Text: "Sweat test extract."},
		{Number: 3, Text: ""},
	}, records)
}

func TestCorpusAddAcrossFiles(t *testing.T) {
	corpus := NewCorpus()
	assert.Equal(t, 0, corpus.Add(Record{Number: 1, Text: "cat"}, Record{Number: 4, Text: "lung"}))
	assert.Equal(t, 1, corpus.Add(Record{Number: 5, Text: "sweat"}, Record{Number: 1, Text: "dog"}))
	assert.Equal(t, 3, corpus.Len())
	assert.Equal(t, []Record{
		{Number: 1, Text: "dog"},
		{Number: 4, Text: "lung"},
		{Number: 5, Text: "sweat"},
	}, corpus.Records())
}

func TestReadCorpusErrors(t *testing.T) {
	_, err := ReadCorpus(strings.NewReader(`<FILE><RECORD><RECORDNUM>abc</RECORDNUM></RECORD></FILE>`), "bad.xml")
	assert.ErrorIs(t, err, apperrors.ErrInputFormat)

	_, err = ReadCorpus(strings.NewReader(`<FILE><RECORD><RECORDNUM>1</RECORDNUM>`), "truncated.xml")
	assert.ErrorIs(t, err, apperrors.ErrInputFormat)
}

const queryXML = `<FILEQUERY>
  <QUERY>
    <QueryNumber>00001</QueryNumber>
    <QueryText>What are the effects of
      calcium; on the physical properties of mucus?</QueryText>
    <Results>3</Results>
    <Records>
      <Item score="0010">139</Item>
      <Item score="2222">151</Item>
      <Item score="1011">166</Item>
    </Records>
  </QUERY>
  <QUERY>
    <QueryNumber>2</QueryNumber>
    <QueryText>Lung infection</QueryText>
    <Records>
      <Item score="22">7</Item>
    </Records>
  </QUERY>
</FILEQUERY>`

func TestReadQueries(t *testing.T) {
	queries, err := ReadQueries(strings.NewReader(queryXML), "cfquery.xml")
	require.NoError(t, err)
	require.Len(t, queries, 2)
	assert.Equal(t, 1, queries[0].Number)
	assert.Contains(t, queries[0].Text, "calcium;")
	assert.Equal(t, []ExpectedItem{
		{DocNumber: 139, Score: "0010"},
		{DocNumber: 151, Score: "2222"},
		{DocNumber: 166, Score: "1011"},
	}, queries[0].Expected)
	assert.Equal(t, 2, queries[1].Number)
}

func TestReadQueriesBadDocument(t *testing.T) {
	_, err := ReadQueries(strings.NewReader(`<FILEQUERY><QUERY><QueryNumber>1</QueryNumber><Records><Item score="1">x</Item></Records></QUERY></FILEQUERY>`), "q.xml")
	assert.ErrorIs(t, err, apperrors.ErrInputFormat)
}

func TestVotes(t *testing.T) {
	assert.Equal(t, 8, Votes("2222"))
	assert.Equal(t, 1, Votes("0010"))
	assert.Equal(t, 0, Votes("22"))
	assert.Equal(t, 0, Votes(""))
}

func TestRankExpected(t *testing.T) {
	queries, err := ReadQueries(strings.NewReader(queryXML), "cfquery.xml")
	require.NoError(t, err)

	assert.Equal(t, []ExpectedDoc{
		{DocNumber: 151, Votes: 8},
		{DocNumber: 166, Votes: 3},
		{DocNumber: 139, Votes: 1},
	}, RankExpected(queries[0]))
	assert.Equal(t, []ExpectedDoc{{DocNumber: 7, Votes: 0}}, RankExpected(queries[1]))
}
