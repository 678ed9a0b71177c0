// Package nlp holds the text normalization and entity extraction primitives
// shared by the intent trainer and the serving path. Everything here is pure
// and deterministic: resources (stopwords, lemma rules) are compiled in.
package nlp

import (
	"regexp"
	"strings"
)

var nonLetters = regexp.MustCompile(`[^a-zA-Z\s]`)

// Normalize lowercases, strips non-letters, tokenizes, removes stopwords and
// short tokens, and lemmatizes. It never fails, even on empty input.
func Normalize(text string) []string {
	text = strings.ToLower(text)
	text = nonLetters.ReplaceAllString(text, " ")

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, Lemmatize(tok))
	}
	return tokens
}

// NormalizeJoin is Normalize joined with single spaces, the form the
// vectorizer consumes.
func NormalizeJoin(text string) string {
	return strings.Join(Normalize(text), " ")
}
