// Package responder renders the deterministic reply for a classified message:
// canned templates for conversational intents, catalog-driven text for
// product, order and inventory lookups.
package responder

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/wearly/supportbot/internal/intent"
	"github.com/wearly/supportbot/internal/models"
	"github.com/wearly/supportbot/internal/nlp"
)

// Catalog is the read-only slice of the data store the responder consumes.
type Catalog interface {
	SearchProducts(ctx context.Context, term string, limit int) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	GetInventoryStatus(ctx context.Context, productID int) (models.InventoryStatus, error)
	GetUserOrders(ctx context.Context, userID int) ([]models.OrderSummary, error)
}

type Responder struct {
	catalog Catalog
}

func New(catalog Catalog) *Responder {
	return &Responder{catalog: catalog}
}

// Generate maps (intent, entities, raw message) to reply text. Catalog errors
// degrade to the not-found wording for that lookup; it never returns an error
// to the caller.
func (r *Responder) Generate(ctx context.Context, label intent.Label, entities nlp.Entities, message string) string {
	switch label {
	case intent.LabelGreeting:
		return pick(GreetingTemplates)
	case intent.LabelGoodbye:
		return pick(GoodbyeTemplates)
	case intent.LabelHelp:
		return pick(HelpTemplates)
	case intent.LabelProductSearch:
		return r.productSearch(ctx, message)
	case intent.LabelProductInfo:
		return r.productInfo(ctx, entities)
	case intent.LabelOrderStatus:
		return r.orderStatus(ctx, entities)
	case intent.LabelReturnPolicy:
		return returnPolicyText
	case intent.LabelShipping:
		return shippingInfoText
	case intent.LabelInventory:
		return r.inventory(ctx, message)
	case intent.LabelUnknown:
		return unknownText
	default:
		return unknownText
	}
}

func pick(templates []string) string {
	return templates[rand.Intn(len(templates))]
}

var searchTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`search for (.+)`),
	regexp.MustCompile(`find (.+)`),
	regexp.MustCompile(`look for (.+)`),
	regexp.MustCompile(`show me (.+)`),
	regexp.MustCompile(`product (.+)`),
	regexp.MustCompile(`item (.+)`),
}

// searchFillerWords is the tiny filter used when no search pattern matched;
// deliberately smaller than the full normalization stopword set.
var searchFillerWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// SearchTerms derives the query terms from the raw message: explicit
// "search for X" style patterns first, then up to 3 meaningful words, then
// the whole trimmed message as a single term.
func SearchTerms(message string) []string {
	lower := strings.ToLower(message)
	for _, p := range searchTermPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			return []string{strings.TrimSpace(m[1])}
		}
	}

	var meaningful []string
	for _, w := range strings.Fields(lower) {
		if _, filler := searchFillerWords[w]; filler || len(w) <= 2 {
			continue
		}
		meaningful = append(meaningful, w)
		if len(meaningful) == 3 {
			break
		}
	}
	if len(meaningful) > 0 {
		return meaningful
	}
	return []string{strings.TrimSpace(lower)}
}

func (r *Responder) productSearch(ctx context.Context, message string) string {
	terms := SearchTerms(message)
	if len(terms) == 0 || terms[0] == "" {
		return "What type of product are you looking for? I can help you find clothing items by name, brand, or category."
	}

	products, err := r.catalog.SearchProducts(ctx, terms[0], 5)
	if err != nil || len(products) == 0 {
		return fmt.Sprintf("I couldn't find any products matching '%s'. Could you try a different search term?", terms[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are some products matching '%s':\n\n", terms[0])
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s by %s\n", i+1, p.Name, p.Brand)
		fmt.Fprintf(&b, "   Category: %s\n", p.Category)
		fmt.Fprintf(&b, "   Price: $%.2f\n\n", p.RetailPrice)
	}
	b.WriteString("Would you like more details about any of these products?")
	return b.String()
}

func (r *Responder) productInfo(ctx context.Context, entities nlp.Entities) string {
	if entities.ProductID == nil {
		return "I'd be happy to provide product information! Could you please specify which product you're interested in?"
	}

	product, err := r.catalog.GetProductByID(ctx, *entities.ProductID)
	if err != nil || product == nil {
		return "I'd be happy to provide product information! Could you please specify which product you're interested in?"
	}

	inventory, err := r.catalog.GetInventoryStatus(ctx, product.ID)
	if err != nil {
		inventory = models.InventoryStatus{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's information about %s:\n\n", product.Name)
	fmt.Fprintf(&b, "Brand: %s\n", product.Brand)
	fmt.Fprintf(&b, "Category: %s\n", product.Category)
	fmt.Fprintf(&b, "Department: %s\n", product.Department)
	fmt.Fprintf(&b, "Price: $%.2f\n", product.RetailPrice)
	fmt.Fprintf(&b, "Available: %d items\n", inventory.AvailableItems)
	if inventory.AvailableItems > 0 {
		b.WriteString("\n✅ This item is currently in stock!")
	} else {
		b.WriteString("\n❌ This item is currently out of stock.")
	}
	return b.String()
}

func (r *Responder) orderStatus(ctx context.Context, entities nlp.Entities) string {
	// Verification first: an order id alone never reveals order contents.
	if entities.OrderID != nil {
		return fmt.Sprintf("I can see order #%d. Let me check the status for you. Please provide your user ID for verification.", *entities.OrderID)
	}

	if entities.UserID != nil {
		orders, err := r.catalog.GetUserOrders(ctx, *entities.UserID)
		if err != nil || len(orders) == 0 {
			return fmt.Sprintf("I couldn't find any orders for user #%d. Please check your user ID.", *entities.UserID)
		}

		var b strings.Builder
		b.WriteString("Here are your recent orders:\n\n")
		for i, o := range orders {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "Order #%d: %s\n", o.OrderID, o.Status)
			fmt.Fprintf(&b, "Items: %d\n", o.ItemCount)
			fmt.Fprintf(&b, "Created: %s\n\n", o.CreatedAt.Format("2006-01-02"))
		}
		return b.String()
	}

	return "I can help you track your order! Please provide your order number or user ID."
}

func (r *Responder) inventory(ctx context.Context, message string) string {
	lower := strings.ToLower(message)

	var garment string
	for _, t := range nlp.GarmentTypes {
		if strings.Contains(lower, t) {
			garment = t
			break
		}
	}
	if garment == "" {
		return inventoryPromptText
	}

	products, err := r.catalog.SearchProducts(ctx, garment, 3)
	if err != nil || len(products) == 0 {
		return fmt.Sprintf("I couldn't find any %s products in our inventory. Could you try a different search term?", garment)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's the current stock information for %s products:\n\n", garment)
	for i, p := range products {
		status, serr := r.catalog.GetInventoryStatus(ctx, p.ID)
		if serr != nil {
			status = models.InventoryStatus{}
		}
		fmt.Fprintf(&b, "%d. %s by %s\n", i+1, p.Name, p.Brand)
		fmt.Fprintf(&b, "   Available: %d items\n", status.AvailableItems)
		fmt.Fprintf(&b, "   Total Stock: %d items\n", status.TotalItems)
		fmt.Fprintf(&b, "   Price: $%.2f\n\n", p.RetailPrice)
	}
	b.WriteString("Would you like more details about any specific product?")
	return b.String()
}
