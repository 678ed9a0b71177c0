package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			in:   "Hello, I'm looking for blue JEANS!",
			want: []string{"hello", "looking", "blue", "jeans"},
		},
		{
			name: "drops stopwords and short tokens",
			in:   "can you get it for me in an XL",
			want: []string{"get"},
		},
		{
			name: "lemmatizes plurals",
			in:   "dresses shirts categories",
			want: []string{"dress", "shirt", "category"},
		},
		{
			name: "irregular plurals keep their form",
			in:   "jeans pants shorts",
			want: []string{"jeans", "pants", "shorts"},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
		{
			name: "only punctuation",
			in:   "?? !!",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeJoin(t *testing.T) {
	assert.Equal(t, "track order", NormalizeJoin("Track my order!"))
	assert.Equal(t, "", NormalizeJoin("??"))
}

func TestLemmatize(t *testing.T) {
	cases := map[string]string{
		"men":     "man",
		"shoes":   "shoe",
		"boxes":   "box",
		"watches": "watch",
		"dress":   "dress", // -ss is not a plural
		"status":  "status",
		"this":    "this",
		"gas":     "gas", // too short for the -s rule
	}
	for in, want := range cases {
		assert.Equal(t, want, Lemmatize(in), "token %q", in)
	}
}
