package intent

import "strings"

// The rule-based fallback matches raw lowercased substrings only; it must work
// even when the trained model and its normalization resources do not.

// inventoryKeywords is checked before anything else so that
// "how many shirts left in stock" resolves to inventory, not product_search.
var inventoryKeywords = []string{
	"stock", "in stock", "available", "how many", "left", "quantity", "inventory",
}

// garmentKeywords map to product_search when no inventory keyword fired.
var garmentKeywords = []string{
	"tshirt", "t-shirt", "shirt", "jeans", "pants", "dress",
	"shoes", "sneakers", "hoodie", "jacket", "sweater",
}

type ruleEntry struct {
	label    Label
	keywords []string
}

// ruleOrder is evaluated top to bottom; within an entry, first keyword in
// declaration order wins. No scoring across multiple matches.
var ruleOrder = []ruleEntry{
	{LabelGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}},
	{LabelGoodbye, []string{"bye", "goodbye", "see you", "thank you", "thanks"}},
	{LabelProductSearch, []string{"search", "find", "look for", "show me", "product", "item"}},
	{LabelProductInfo, []string{"details", "information", "tell me about", "what is", "price", "cost"}},
	{LabelInventory, inventoryKeywords},
	{LabelOrderStatus, []string{"order", "track", "status", "where is", "shipped", "delivered"}},
	{LabelReturnPolicy, []string{"return", "refund", "exchange", "policy", "money back"}},
	{LabelShipping, []string{"shipping", "delivery", "how long", "when", "tracking"}},
	{LabelHelp, []string{"help", "support", "assist", "problem", "issue"}},
}

// ClassifyRules is the deterministic keyword classifier. It never errors and
// labels anything unmatched as unknown.
func ClassifyRules(message string) Label {
	lower := strings.ToLower(message)

	for _, kw := range inventoryKeywords {
		if strings.Contains(lower, kw) {
			return LabelInventory
		}
	}
	for _, kw := range garmentKeywords {
		if strings.Contains(lower, kw) {
			return LabelProductSearch
		}
	}
	for _, entry := range ruleOrder {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.label
			}
		}
	}
	return LabelUnknown
}
