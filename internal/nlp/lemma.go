package nlp

import "strings"

// Irregular forms that suffix rules would get wrong.
var lemmaExceptions = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"feet":     "foot",
	"teeth":    "tooth",
	"geese":    "goose",
	"mice":     "mouse",
	"people":   "person",
	"jeans":    "jeans",
	"pants":    "pants",
	"clothes":  "clothes",
	"shorts":   "shorts",
	"leaves":   "leaf",
	"shelves":  "shelf",
	"knives":   "knife",
	"wives":    "wife",
}

// Lemmatize reduces a lowercased token to its dictionary base form.
// The rules cover noun plurals, which is what the dictionary lemmatizer in the
// training pipeline resolves for this corpus; everything else passes through.
func Lemmatize(token string) string {
	if base, ok := lemmaExceptions[token]; ok {
		return base
	}
	switch {
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "xes") || strings.HasSuffix(token, "zes") ||
		strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "shes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "s") &&
		!strings.HasSuffix(token, "ss") &&
		!strings.HasSuffix(token, "us") &&
		!strings.HasSuffix(token, "is") &&
		len(token) > 3:
		return token[:len(token)-1]
	}
	return token
}
