// Package tokenizer provides text tokenisation for the indexer and the query
// path. It upper-cases input, splits it into word tokens (keeping internal
// hyphens and periods, splitting off apostrophe clitics), and removes English
// stop-words, punctuation-only tokens and pure-digit tokens.
package tokenizer

import (
	"strings"
	"unicode"
)

var stopWords = toSet(
	"I", "ME", "MY", "MYSELF", "WE", "OUR", "OURS", "OURSELVES", "YOU", "YOU'RE",
	"YOU'VE", "YOU'LL", "YOU'D", "YOUR", "YOURS", "YOURSELF", "YOURSELVES", "HE",
	"HIM", "HIS", "HIMSELF", "SHE", "SHE'S", "HER", "HERS", "HERSELF", "IT", "IT'S",
	"ITS", "ITSELF", "THEY", "THEM", "THEIR", "THEIRS", "THEMSELVES", "WHAT", "WHICH",
	"WHO", "WHOM", "THIS", "THAT", "THAT'LL", "THESE", "THOSE", "AM", "IS", "ARE",
	"WAS", "WERE", "BE", "BEEN", "BEING", "HAVE", "HAS", "HAD", "HAVING", "DO",
	"DOES", "DID", "DOING", "A", "AN", "THE", "AND", "BUT", "IF", "OR", "BECAUSE",
	"AS", "UNTIL", "WHILE", "OF", "AT", "BY", "FOR", "WITH", "ABOUT", "AGAINST",
	"BETWEEN", "INTO", "THROUGH", "DURING", "BEFORE", "AFTER", "ABOVE", "BELOW",
	"TO", "FROM", "UP", "DOWN", "IN", "OUT", "ON", "OFF", "OVER", "UNDER", "AGAIN",
	"FURTHER", "THEN", "ONCE", "HERE", "THERE", "WHEN", "WHERE", "WHY", "HOW",
	"ALL", "ANY", "BOTH", "EACH", "FEW", "MORE", "MOST", "OTHER", "SOME", "SUCH",
	"NO", "NOR", "NOT", "ONLY", "OWN", "SAME", "SO", "THAN", "TOO", "VERY", "S",
	"T", "CAN", "WILL", "JUST", "DON", "DON'T", "SHOULD", "SHOULD'VE", "NOW", "D",
	"LL", "M", "O", "RE", "VE", "Y", "AIN", "AREN", "AREN'T", "COULDN", "COULDN'T",
	"DIDN", "DIDN'T", "DOESN", "DOESN'T", "HADN", "HADN'T", "HASN", "HASN'T",
	"HAVEN", "HAVEN'T", "ISN", "ISN'T", "MA", "MIGHTN", "MIGHTN'T", "MUSTN",
	"MUSTN'T", "NEEDN", "NEEDN'T", "SHAN", "SHAN'T", "SHOULDN", "SHOULDN'T",
	"WASN", "WASN'T", "WEREN", "WEREN'T", "WON", "WON'T", "WOULDN", "WOULDN'T",
)

// Token represents a single normalised term and its position in the
// original text.
type Token struct {
	Term     string
	Position int
}

// Tokenize breaks text into upper-cased Tokens with stop-words, punctuation
// and pure numbers removed. Positions count surviving tokens only.
func Tokenize(text string) []Token {
	words := split(strings.ToUpper(text))
	tokens := make([]Token, 0, len(words)/2)
	pos := 0
	for _, word := range words {
		if !Keep(word) {
			continue
		}
		tokens = append(tokens, Token{
			Term:     word,
			Position: pos,
		})
		pos++
	}
	return tokens
}

// Terms returns the bare terms of Tokenize(text).
func Terms(text string) []string {
	tokens := Tokenize(text)
	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = tok.Term
	}
	return terms
}

// Keep reports whether an upper-cased word survives filtering.
func Keep(word string) bool {
	if word == "" {
		return false
	}
	if _, isStop := stopWords[word]; isStop {
		return false
	}
	hasAlnum, allDigits := false, true
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasAlnum = true
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	return hasAlnum && !allDigits
}

// split emits words and single punctuation runes. Hyphens and periods join
// two alphanumeric runs; an apostrophe starts a clitic token ("'S", "N'T").
func split(text string) []string {
	runes := []rune(text)
	var out []string
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWord(r):
			j := i + 1
			for j < len(runes) {
				if isWord(runes[j]) {
					j++
					continue
				}
				if (runes[j] == '-' || runes[j] == '.') && j+1 < len(runes) && isWord(runes[j+1]) {
					j += 2
					continue
				}
				break
			}
			word := string(runes[i:j])
			if j < len(runes) && runes[j] == '\'' && strings.HasSuffix(word, "N") &&
				j+1 < len(runes) && runes[j+1] == 'T' && (j+2 == len(runes) || !isWord(runes[j+2])) {
				out = append(out, word[:len(word)-1], "N'T")
				i = j + 2
				continue
			}
			out = append(out, word)
			i = j
		case r == '\'' && i+1 < len(runes) && isWord(runes[i+1]) && i > 0 && isWord(runes[i-1]):
			j := i + 1
			for j < len(runes) && isWord(runes[j]) {
				j++
			}
			out = append(out, string(runes[i:j]))
			i = j
		default:
			out = append(out, string(r))
			i++
		}
	}
	return out
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
