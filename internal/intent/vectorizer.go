package intent

import (
	"math"
	"sort"
	"strings"

	"github.com/wearly/supportbot/internal/nlp"
)

// maxFeatures caps the vectorizer vocabulary.
const maxFeatures = 5000

// Vectorizer projects normalized text onto tfidf-weighted unigram+bigram
// features. Fitted once during training, then read-only.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"` // term -> column
	IDF        []float64      `json:"idf"`        // aligned with columns
}

// terms produces the unigram+bigram stream for one document, with English
// stopwords removed.
func terms(doc string) []string {
	fields := strings.Fields(doc)
	words := fields[:0]
	for _, f := range fields {
		if !nlp.IsStopword(f) {
			words = append(words, f)
		}
	}

	out := make([]string, 0, 2*len(words))
	out = append(out, words...)
	for i := 0; i+1 < len(words); i++ {
		out = append(out, words[i]+" "+words[i+1])
	}
	return out
}

// FitVectorizer builds the vocabulary and idf weights from the training
// documents. Vocabulary selection keeps the most frequent terms up to
// maxFeatures; column order is lexicographic so fitting is deterministic.
func FitVectorizer(docs []string) *Vectorizer {
	df := map[string]int{}    // documents containing term
	total := map[string]int{} // corpus-wide term count

	for _, doc := range docs {
		seen := map[string]struct{}{}
		for _, t := range terms(doc) {
			total[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	selected := make([]string, 0, len(total))
	for t := range total {
		selected = append(selected, t)
	}
	if len(selected) > maxFeatures {
		sort.Slice(selected, func(i, j int) bool {
			if total[selected[i]] != total[selected[j]] {
				return total[selected[i]] > total[selected[j]]
			}
			return selected[i] < selected[j]
		})
		selected = selected[:maxFeatures]
	}
	sort.Strings(selected)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(selected)),
		IDF:        make([]float64, len(selected)),
	}
	n := float64(len(docs))
	for i, t := range selected {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v
}

// Transform maps one normalized document to a dense, L2-normalized tfidf row.
// Unseen terms simply contribute nothing; an all-zero row is returned as-is.
func (v *Vectorizer) Transform(doc string) []float64 {
	row := make([]float64, len(v.IDF))
	for _, t := range terms(doc) {
		if col, ok := v.Vocabulary[t]; ok {
			row[col]++
		}
	}

	var norm float64
	for col := range row {
		if row[col] > 0 {
			row[col] *= v.IDF[col]
			norm += row[col] * row[col]
		}
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range row {
			row[col] /= norm
		}
	}
	return row
}

// NumFeatures is the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int { return len(v.IDF) }
