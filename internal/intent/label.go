// Package intent classifies user utterances into a closed set of support
// intents. Two paths exist: a trained bag-of-ngrams model (tfidf vectorizer +
// bagged decision trees) and a deterministic keyword fallback. The Classifier
// routes between them on model availability and confidence.
package intent

// Label is the closed set of support intents.
type Label string

const (
	LabelGreeting      Label = "greeting"
	LabelGoodbye       Label = "goodbye"
	LabelProductSearch Label = "product_search"
	LabelProductInfo   Label = "product_info"
	LabelInventory     Label = "inventory"
	LabelOrderStatus   Label = "order_status"
	LabelReturnPolicy  Label = "return_policy"
	LabelShipping      Label = "shipping"
	LabelHelp          Label = "help"
	LabelUnknown       Label = "unknown"
)

// Labels lists every classifiable intent (unknown excluded: it is the absence
// of a classification, not a trainable class).
var Labels = []Label{
	LabelGreeting,
	LabelGoodbye,
	LabelProductSearch,
	LabelProductInfo,
	LabelInventory,
	LabelOrderStatus,
	LabelReturnPolicy,
	LabelShipping,
	LabelHelp,
}

func (l Label) String() string { return string(l) }
