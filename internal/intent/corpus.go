package intent

// Example is one hand-authored training pair.
type Example struct {
	Phrase string
	Label  Label
}

var greetingPhrases = []string{
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	"howdy", "greetings", "what's up", "yo", "hi there", "hello there",
	"good day", "morning", "afternoon", "evening",
}

var productSearchPhrases = []string{
	"search for", "find", "look for", "show me", "i want", "i need",
	"looking for", "searching for", "find me", "get me", "show me some",
	"i'm looking for", "can you find", "help me find", "where can i find",
	"do you have", "do you sell", "are there any", "show me products",
	"browse", "explore", "view", "see", "check out",
}

// productCategories are expanded mechanically into search phrasings below.
var productCategories = []string{
	"tshirts", "t-shirts", "shirts", "jeans", "pants", "dresses",
	"shoes", "sneakers", "boots", "hoodies", "jackets", "sweaters",
	"skirts", "shorts", "blouses", "tops", "outfits", "clothing",
	"apparel", "fashion", "wear", "attire",
}

var inventoryPhrases = []string{
	"how many", "stock", "in stock", "available", "left", "quantity",
	"inventory", "check stock", "stock level", "availability",
	"do you have in stock", "is it available", "how much stock",
	"remaining", "supply", "on hand", "inventory level",
	"stock status", "availability status", "stock check",
}

var orderStatusPhrases = []string{
	"track", "tracking", "order status", "where is my order",
	"order tracking", "track my order", "order number", "order id",
	"shipped", "delivered", "delivery status", "shipping status",
	"when will it arrive", "order update", "order information",
	"order details", "order history", "my orders", "order #",
}

var returnPolicyPhrases = []string{
	"return", "refund", "exchange", "return policy", "refund policy",
	"money back", "return item", "send back", "return process",
	"how to return", "return information", "return details",
	"return window", "return conditions", "return shipping",
	"return address", "return label", "return authorization",
}

var shippingPhrases = []string{
	"shipping", "delivery", "how long", "when", "shipping time",
	"delivery time", "shipping cost", "delivery cost", "shipping fee",
	"free shipping", "express shipping", "overnight", "standard shipping",
	"shipping method", "delivery method", "shipping options",
	"tracking number", "shipping address", "delivery address",
}

var helpPhrases = []string{
	"help", "support", "assist", "problem", "issue", "trouble",
	"need help", "can you help", "assistance", "support needed",
	"having trouble", "don't understand", "confused", "what can you do",
	"capabilities", "features", "how does this work", "guide me",
}

var goodbyePhrases = []string{
	"bye", "goodbye", "see you", "thank you", "thanks", "thank you very much",
	"appreciate it", "that's all", "that's it", "done", "finished",
	"end", "close", "exit", "quit", "good night", "see you later",
	"take care", "have a good day", "farewell",
}

var productInfoPhrases = []string{
	"details", "information", "tell me about", "what is", "price", "cost",
	"product details", "product information", "specifications", "features",
	"description", "about this", "more info", "product specs", "product features",
	"what about", "tell me more", "explain", "describe",
}

// Corpus builds the fixed training set. It is created once at trainer
// construction and never mutated after.
func Corpus() []Example {
	var out []Example
	add := func(label Label, phrases []string) {
		for _, p := range phrases {
			out = append(out, Example{Phrase: p, Label: label})
		}
	}

	add(LabelGreeting, greetingPhrases)
	add(LabelProductSearch, productSearchPhrases)
	for _, cat := range productCategories {
		out = append(out,
			Example{Phrase: cat, Label: LabelProductSearch},
			Example{Phrase: "show me " + cat, Label: LabelProductSearch},
			Example{Phrase: "find " + cat, Label: LabelProductSearch},
			Example{Phrase: "search for " + cat, Label: LabelProductSearch},
		)
	}
	add(LabelInventory, inventoryPhrases)
	add(LabelOrderStatus, orderStatusPhrases)
	add(LabelReturnPolicy, returnPolicyPhrases)
	add(LabelShipping, shippingPhrases)
	add(LabelHelp, helpPhrases)
	add(LabelGoodbye, goodbyePhrases)
	add(LabelProductInfo, productInfoPhrases)

	return out
}
