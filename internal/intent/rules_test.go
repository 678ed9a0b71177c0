package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRules(t *testing.T) {
	tests := []struct {
		in   string
		want Label
	}{
		{"Hello!", LabelGreeting},
		{"hey, good morning", LabelGreeting},
		{"goodbye", LabelGoodbye},
		{"search for something nice", LabelProductSearch},
		{"tell me about this", LabelProductInfo},
		{"where is my package", LabelOrderStatus},
		{"what's your return policy", LabelReturnPolicy},
		{"shipping options?", LabelShipping},
		{"i have a problem", LabelHelp},
		{"??", LabelUnknown},
		{"", LabelUnknown},
		{"zzz qqq", LabelUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRules(tt.in), "message %q", tt.in)
	}
}

func TestClassifyRulesInventoryBeatsGarment(t *testing.T) {
	// a garment word plus an inventory word must resolve to inventory
	assert.Equal(t, LabelInventory, ClassifyRules("How many t-shirts are in stock?"))
	assert.Equal(t, LabelInventory, ClassifyRules("check stock for jeans"))
	assert.Equal(t, LabelInventory, ClassifyRules("are hoodies available?"))

	// a garment word alone is a product search
	assert.Equal(t, LabelProductSearch, ClassifyRules("jeans"))
	assert.Equal(t, LabelProductSearch, ClassifyRules("I want a new hoodie"))
}

func TestClassifyRulesIdempotent(t *testing.T) {
	messages := []string{"Hello!", "how many jeans are left", "??", "track order #456"}
	for _, m := range messages {
		first := ClassifyRules(m)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, ClassifyRules(m), "message %q", m)
		}
	}
}

func TestClassifierRuleFallbackWithoutModel(t *testing.T) {
	c := NewClassifier(nil, nil)
	assert.False(t, c.ModelLoaded())

	label, confidence := c.ClassifyWithConfidence("Hello!")
	assert.Equal(t, LabelGreeting, label)
	assert.Nil(t, confidence, "rule path must not report a confidence")

	assert.Equal(t, LabelUnknown, c.Classify("??"))
}
