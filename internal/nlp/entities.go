package nlp

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/wearly/supportbot/internal/models"
)

// Entities is the bag of structured values pulled out of one utterance.
// A nil field means the entity was not detected; extraction never errors on
// the text itself.
type Entities struct {
	ProductID   *int    `json:"product_id,omitempty"`
	OrderID     *int    `json:"order_id,omitempty"`
	UserID      *int    `json:"user_id,omitempty"`
	ProductName *string `json:"product_name,omitempty"`
	ProductType *string `json:"product_type,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
}

func (e Entities) IsEmpty() bool {
	return e.ProductID == nil && e.OrderID == nil && e.UserID == nil &&
		e.ProductName == nil && e.ProductType == nil && e.Quantity == nil
}

// GarmentTypes is the closed list of garment tokens, in match priority order.
var GarmentTypes = []string{
	"tshirt", "t-shirt", "shirt", "jeans", "pants", "dress",
	"shoes", "sneakers", "hoodie", "jacket", "sweater",
}

var (
	productIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`product\s*#?(\d+)`),
		regexp.MustCompile(`item\s*#?(\d+)`),
		regexp.MustCompile(`product\s*id\s*(\d+)`),
		regexp.MustCompile(`item\s*id\s*(\d+)`),
	}
	orderIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`order\s*#?(\d+)`),
		regexp.MustCompile(`order\s*number\s*(\d+)`),
		regexp.MustCompile(`order\s*id\s*(\d+)`),
	}
	userIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`user\s*#?(\d+)`),
		regexp.MustCompile(`user\s*id\s*(\d+)`),
		regexp.MustCompile(`customer\s*#?(\d+)`),
		regexp.MustCompile(`customer\s*id\s*(\d+)`),
	}
	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*(?:items?|pieces?|units?)`),
		regexp.MustCompile(`quantity\s*of\s*(\d+)`),
		regexp.MustCompile(`(\d+)\s*available`),
		regexp.MustCompile(`(\d+)\s*in\s*stock`),
	}
)

func firstInt(text string, patterns []*regexp.Regexp) *int {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// number too large to parse; treat as absent
			continue
		}
		return &n
	}
	return nil
}

// ExtractEntities runs the pattern- and lookup-based extraction over the raw
// message. First match wins per entity kind.
func ExtractEntities(text string) Entities {
	lower := strings.ToLower(text)

	var e Entities
	e.ProductID = firstInt(lower, productIDPatterns)
	e.OrderID = firstInt(lower, orderIDPatterns)
	e.UserID = firstInt(lower, userIDPatterns)

	for _, t := range GarmentTypes {
		if strings.Contains(lower, t) {
			typ := t
			e.ProductType = &typ
			break
		}
	}

	e.Quantity = firstInt(lower, quantityPatterns)
	return e
}

// catalogLister is the slice of the catalog needed for name resolution.
type catalogLister interface {
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
}

// catalogScanLimit caps the linear scan over catalog rows. This is a scan with
// an explicit cap, not an index lookup; fine for small catalogs.
const catalogScanLimit = 1000

// ExtractCatalogEntities extends ExtractEntities by resolving product name and
// id against the live catalog via case-insensitive substring match. Catalog
// errors leave the pattern-derived entities untouched.
func ExtractCatalogEntities(ctx context.Context, text string, catalog catalogLister) Entities {
	e := ExtractEntities(text)

	products, err := catalog.ListProducts(ctx, catalogScanLimit)
	if err != nil {
		return e
	}

	lower := strings.ToLower(text)
	for i := range products {
		name := products[i].Name
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			id := products[i].ID
			e.ProductName = &name
			e.ProductID = &id
			break
		}
	}
	return e
}
