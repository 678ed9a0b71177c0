package responder

import "github.com/wearly/supportbot/internal/intent"

// GreetingTemplates etc. are exported so the capability endpoint and tests can
// reference the canonical sets.
var GreetingTemplates = []string{
	"Hello! Welcome to our clothing store. How can I help you today?",
	"Hi there! I'm here to assist you with your shopping needs. What can I help you find?",
	"Welcome! I'm your personal shopping assistant. How may I help you?",
}

var GoodbyeTemplates = []string{
	"Thank you for shopping with us! Have a great day!",
	"Goodbye! Feel free to come back if you need anything else.",
	"Thanks for chatting with us. Happy shopping!",
}

var HelpTemplates = []string{
	"I can help you with:\n• Finding products\n• Product information\n• Order tracking\n• Return policies\n• Shipping information\nWhat would you like to know?",
	"Here's what I can assist you with:\n• Product search and recommendations\n• Order status and tracking\n• Return and refund policies\n• Shipping and delivery information\nHow can I help?",
}

const returnPolicyText = `Our return policy is customer-friendly:

📦 **Return Window**: 30 days from delivery
✅ **Conditions**: Items must be unworn, unwashed, and with original tags
🔄 **Process**:
1. Contact customer service
2. Get return authorization
3. Ship item back
4. Refund processed within 5-7 business days

💳 **Refunds**: Original payment method
🚚 **Return Shipping**: Free for defective items

Need help with a specific return? Please provide your order number.`

const shippingInfoText = `Here's our shipping information:

🚚 **Standard Shipping**: 5-7 business days
⚡ **Express Shipping**: 2-3 business days
🛩️ **Overnight**: Next business day

💰 **Shipping Costs**:
• Orders over $50: FREE standard shipping
• Standard: $5.99
• Express: $12.99
• Overnight: $24.99

📦 **Tracking**: All orders include tracking numbers
🌍 **International**: Available to select countries

Need to track a specific order? Please provide your order number.`

const inventoryPromptText = `I can help you check inventory for specific products. Please specify what type of item you're looking for, such as:

• "How many t-shirts are in stock?"
• "Check stock for jeans"
• "Available quantity of dresses"
• "Inventory for shoes"

What product would you like to check?`

const unknownText = `I'm not sure I understood that. I can help you with:

• Finding products
• Product information and pricing
• Order tracking and status
• Return and refund policies
• Shipping information

Could you please rephrase your question or let me know what you need help with?`

// fallbackReplies are the deterministic one-liners used when the LLM
// collaborator is unavailable; a distinct, shorter set than the canned
// templates above.
var fallbackReplies = map[intent.Label]string{
	intent.LabelGreeting:      "Hello! I'm here to help you with your shopping needs. What can I assist you with today?",
	intent.LabelProductSearch: "I'd be happy to help you find products! Could you please provide more details about what you're looking for?",
	intent.LabelProductInfo:   "I can look up product details for you. Which product are you interested in?",
	intent.LabelInventory:     "I can help you check product availability. Could you specify which product or category you're interested in?",
	intent.LabelOrderStatus:   "I can help you track your order. Do you have an order number I can look up for you?",
	intent.LabelReturnPolicy:  "I'd be happy to explain our return policy. What specific information would you like to know?",
	intent.LabelShipping:      "I can provide shipping information. What would you like to know about delivery options or timing?",
	intent.LabelHelp:          "I'm here to help! I can assist with product searches, order tracking, inventory checks, return policies, and shipping information. What do you need help with?",
	intent.LabelGoodbye:       "Thank you for chatting with us! Have a great day and feel free to return if you need anything else.",
}

// Fallback returns the deterministic per-intent sentence used when the LLM
// path is unavailable.
func Fallback(label intent.Label) string {
	if reply, ok := fallbackReplies[label]; ok {
		return reply
	}
	return "I'm here to help! Could you please provide more details about what you're looking for?"
}
