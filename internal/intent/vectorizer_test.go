package intent

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFitVectorizerColumnsAreLexicographic(t *testing.T) {
	v := FitVectorizer([]string{"blue jeans", "red jeans", "blue dress"})

	terms := make([]string, len(v.IDF))
	for term, col := range v.Vocabulary {
		terms[col] = term
	}
	assert.IsNonDecreasing(t, terms)
	assert.Equal(t, v.NumFeatures(), len(v.Vocabulary))

	// bigrams are part of the vocabulary
	assert.Contains(t, v.Vocabulary, "blue jeans")
	assert.Contains(t, v.Vocabulary, "jeans")
}

func TestTransformIsL2Normalized(t *testing.T) {
	v := FitVectorizer([]string{"blue jeans", "red jeans", "blue dress"})

	row := v.Transform("blue jeans")
	var norm float64
	for _, x := range row {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestTransformUnseenTermsAreZero(t *testing.T) {
	v := FitVectorizer([]string{"blue jeans"})

	row := v.Transform("orange sweater")
	for col, x := range row {
		assert.Zero(t, x, "column %d", col)
	}
}
